// Package shell implements the interactive line editor, renderer and command
// dispatcher that sit between a terminal and a set of registered programs.
//
// A Shell is fed raw input chunks (one key or escape sequence per chunk) and
// writes prompt, highlighted line and program output back to a vos.Terminal.
package shell

import "unicode/utf8"

// Buffer is the line being edited along with a cursor.
//
// The cursor is a byte offset into the text that always lies on a rune
// boundary, 0 <= cursor <= len(text).
type Buffer struct {
	text   string
	cursor int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// String returns the text of the buffer.
func (b *Buffer) String() string {
	return b.text
}

// Cursor returns the cursor's byte offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the length of the text in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.text == ""
}

// BeforeCursor returns the text to the left of the cursor.
func (b *Buffer) BeforeCursor() string {
	return b.text[:b.cursor]
}

// Insert adds s at the cursor and moves the cursor past it.
func (b *Buffer) Insert(s string) {
	b.InsertWithoutMoving(s)
	b.cursor += len(s)
}

// InsertWithoutMoving adds s at the cursor, leaving the cursor before it.
func (b *Buffer) InsertWithoutMoving(s string) {
	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
}

// DeleteLeft removes the rune before the cursor, if any.
func (b *Buffer) DeleteLeft() {
	if b.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	b.text = b.text[:b.cursor-size] + b.text[b.cursor:]
	b.cursor -= size
}

// DeleteRight removes the rune at the cursor, if any.
func (b *Buffer) DeleteRight() {
	if b.cursor == len(b.text) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
	b.text = b.text[:b.cursor] + b.text[b.cursor+size:]
}

// MoveLeft moves the cursor back one rune.
func (b *Buffer) MoveLeft() {
	if b.cursor == 0 {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text[:b.cursor])
	b.cursor -= size
}

// MoveRight moves the cursor forward one rune.
func (b *Buffer) MoveRight() {
	if b.cursor == len(b.text) {
		return
	}
	_, size := utf8.DecodeRuneInString(b.text[b.cursor:])
	b.cursor += size
}

// MoveToStart moves the cursor before the first rune.
func (b *Buffer) MoveToStart() {
	b.cursor = 0
}

// MoveToEnd moves the cursor after the last rune.
func (b *Buffer) MoveToEnd() {
	b.cursor = len(b.text)
}

// Set replaces the text and moves the cursor to the end.
func (b *Buffer) Set(text string) {
	b.text = text
	b.cursor = len(text)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = ""
	b.cursor = 0
}
