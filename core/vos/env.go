package vos

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// VEnv is the set of named shell variables templates are expanded against.
type VEnv interface {
	// Unsetenv removes a single variable.
	Unsetenv(key string) error

	// Setenv sets the value of the variable named by the key.
	// It returns an error, if any.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the variable named by the key.
	// If the variable is present the value (which may be empty) is returned
	// and the boolean is true. Otherwise the returned value will be empty and
	// the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// ExpandEnv replaces ${var} or $var in the string according to the values of
	// the current variables. References to undefined variables are
	// replaced by the empty string.
	ExpandEnv(s string) string

	// Environ returns a sorted copy of the variables in the form "key=value".
	Environ() []string
}

// EnvironFetcher is anything that can list "key=value" pairs, os.Environ
// included.
type EnvironFetcher interface {
	Environ() []string
}

// EnvList adapts a plain list of "key=value" strings to an EnvironFetcher.
type EnvList []string

// Environ implements EnvironFetcher.Environ.
func (e EnvList) Environ() []string {
	return e
}

// CopyEnv copies all the variables from src to dst.
func CopyEnv(dst VEnv, src EnvironFetcher) error {
	for _, e := range src.Environ() {
		key, value := splitEnv(e)
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

func splitEnv(e string) (string, string) {
	key, value, _ := strings.Cut(e, "=")
	return key, value
}

// NewMapEnv creates a new variable store backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates a new variable store holding the given
// "key=value" pairs. Entries without a "=" are set to the empty string.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}
	// Ignore error, it will never be set for MapEnv.
	_ = CopyEnv(out, EnvList(environ))
	return out
}

// MapEnv implements an in-memory VEnv.
//
// MapEnv isn't safe for concurrent use. The shell only touches it from the
// goroutine that dispatches commands and nothing that runs in the background
// is handed the store.
type MapEnv struct {
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	delete(m.env, key)
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	return m.env[key]
}

// ExpandEnv implements VEnv.ExpandEnv.
func (m *MapEnv) ExpandEnv(s string) string {
	return os.Expand(s, m.Getenv)
}

// Environ implements VEnv.Environ.
func (m *MapEnv) Environ() []string {
	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}

// Len returns the number of variables set.
func (m *MapEnv) Len() int {
	return len(m.env)
}
