package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bs-community/blessing-skin-shell/core/shell"
	"github.com/juju/ratelimit"
)

var curlHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// curlRate is the most bytes per second curl reads from a response body.
const curlRate = 2 * 1000 * 1000

// Curl fetches the URL given as its first argument and prints the body.
func Curl(ctx context.Context, stdio *shell.Stdio, args []shell.Argument, done *shell.Completion) {
	var rawURL string
	if len(args) > 0 {
		if text, ok := args[0].(shell.Text); ok {
			rawURL = string(text)
		}
	}
	if rawURL == "" {
		stdio.Println("No URL is provided.")
		done.Done(1)
		return
	}

	if err := fetch(ctx, stdio, rawURL); err != nil {
		stdio.Println(err.Error())
		done.Done(1)
		return
	}
	done.Done(0)
}

func fetch(ctx context.Context, w io.Writer, rawURL string) error {
	// Do this first, otherwise url.Parse has issues parsing URLs with ports.
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("invalid URL: %s", rawURL)
	}
	request.Header.Set("User-Agent", "curl/7.72.0")

	response, err := curlHTTPClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	tokenBucket := ratelimit.NewBucketWithRate(curlRate, curlRate)
	out := newCRLFWriter(w)
	received, err := io.Copy(out, ratelimit.Reader(response.Body, tokenBucket))
	if _, nlErr := io.WriteString(out, "\n"); err == nil {
		err = nlErr
	}
	if err != nil {
		return fmt.Errorf("transfer failed after %s: %w", BytesToHuman(received), err)
	}
	return nil
}

func init() {
	addInternal("curl", "Transfer a URL.", Curl)
}
