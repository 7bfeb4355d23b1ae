package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_empty(t *testing.T) {
	h := NewHistory()

	_, ok := h.Up()
	assert.False(t, ok)
	_, ok = h.Down()
	assert.False(t, ok)
	_, ok = h.Find("")
	assert.False(t, ok)
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_upThenDownReturnsToBlank(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			h := NewHistory()
			for i := 0; i < n; i++ {
				h.Commit(fmt.Sprintf("line %d", i))
			}

			for i := n - 1; i >= 0; i-- {
				got, ok := h.Up()
				assert.True(t, ok)
				assert.Equal(t, fmt.Sprintf("line %d", i), got)
			}

			for i := 1; i < n; i++ {
				got, ok := h.Down()
				assert.True(t, ok)
				assert.Equal(t, fmt.Sprintf("line %d", i), got)
			}

			_, ok := h.Down()
			assert.False(t, ok)
			assert.Equal(t, h.Len(), h.Cursor())
		})
	}
}

func TestHistory_upStopsAtOldest(t *testing.T) {
	h := NewHistory()
	h.Commit("first")
	h.Commit("second")

	h.Up()
	h.Up()
	got, ok := h.Up()

	assert.True(t, ok)
	assert.Equal(t, "first", got)
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_commitResetsCursor(t *testing.T) {
	h := NewHistory()
	h.Commit("a")
	h.Commit("b")
	h.Up()
	h.Up()

	h.Commit("c")

	assert.Equal(t, 3, h.Cursor())
	got, _ := h.Up()
	assert.Equal(t, "c", got)
}

func TestHistory_Find(t *testing.T) {
	h := NewHistory()
	h.Commit("echo one")
	h.Commit("export a=b")
	h.Commit("echo two")

	cases := map[string]struct {
		prefix string
		want   string
		ok     bool
	}{
		"newest-first": {prefix: "echo", want: "echo two", ok: true},
		"older":        {prefix: "ex", want: "export a=b", ok: true},
		"exact":        {prefix: "echo one", want: "echo one", ok: true},
		"missing":      {prefix: "curl", ok: false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, ok := h.Find(tc.prefix)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func ExampleHistory_Entries() {
	h := NewHistory()
	h.Commit("true")
	h.Commit("echo hi")

	fmt.Printf("%q\n", h.Entries())

	// Output: ["true" "echo hi"]
}
