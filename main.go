package main

import "github.com/bs-community/blessing-skin-shell/cmd"

func main() {
	cmd.Execute()
}
