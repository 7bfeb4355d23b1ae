package shell

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Insert(t *testing.T) {
	b := NewBuffer()
	b.Insert("ecxho")
	b.MoveToStart()
	b.MoveRight()
	b.MoveRight()
	b.MoveRight()
	b.DeleteLeft()

	assert.Equal(t, "echo", b.String())
	assert.Equal(t, 2, b.Cursor())
}

func TestBuffer_InsertWithoutMoving(t *testing.T) {
	b := NewBuffer()
	b.Insert("echo ")
	b.InsertWithoutMoving(`""`)
	b.MoveRight()
	b.Insert("hi")

	assert.Equal(t, `echo "hi"`, b.String())
	assert.Equal(t, 8, b.Cursor())
}

func TestBuffer_edges(t *testing.T) {
	b := NewBuffer()
	b.DeleteLeft()
	b.DeleteRight()
	b.MoveLeft()
	b.MoveRight()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Cursor())

	b.Insert("ab")
	b.DeleteRight()
	assert.Equal(t, "ab", b.String())

	b.MoveToStart()
	b.DeleteLeft()
	assert.Equal(t, "ab", b.String())

	b.DeleteRight()
	assert.Equal(t, "b", b.String())
	assert.Equal(t, 0, b.Cursor())
}

func TestBuffer_multibyte(t *testing.T) {
	b := NewBuffer()
	b.Insert("a❯b")
	b.MoveLeft()
	b.MoveLeft()
	assert.Equal(t, 1, b.Cursor())

	b.DeleteRight()
	assert.Equal(t, "ab", b.String())

	b.Set("❯❯")
	b.DeleteLeft()
	assert.Equal(t, "❯", b.String())
	assert.Equal(t, len("❯"), b.Cursor())
	assert.Equal(t, "❯", b.BeforeCursor())
}

func TestBuffer_SetAndClear(t *testing.T) {
	b := NewBuffer()
	b.Set("echo hi")
	assert.Equal(t, 7, b.Cursor())
	assert.Equal(t, 7, b.Len())

	b.Clear()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Cursor())
}

func TestBuffer_cursorStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	inserts := []string{"a", "é", "❯", "$x", ""}

	b := NewBuffer()
	for i := 0; i < 5000; i++ {
		switch rng.Intn(8) {
		case 0:
			b.Insert(inserts[rng.Intn(len(inserts))])
		case 1:
			b.InsertWithoutMoving(inserts[rng.Intn(len(inserts))])
		case 2:
			b.DeleteLeft()
		case 3:
			b.DeleteRight()
		case 4:
			b.MoveLeft()
		case 5:
			b.MoveRight()
		case 6:
			b.MoveToStart()
		case 7:
			b.MoveToEnd()
		}

		if b.Cursor() < 0 || b.Cursor() > b.Len() {
			t.Fatalf("cursor %d out of [0, %d] after step %d", b.Cursor(), b.Len(), i)
		}
		if !utf8.ValidString(b.BeforeCursor()) {
			t.Fatalf("cursor %d splits a rune in %q", b.Cursor(), b.String())
		}
	}
}
