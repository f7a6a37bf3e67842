// Package source holds the immutable code-point buffer the lexer and parser
// read from.
package source

import "sort"

// Buffer is an immutable sequence of Unicode scalar values addressed by
// code-point index, not byte offset. The external driver is responsible for
// UTF-8 decoding before constructing a Buffer.
type Buffer struct {
	runes      []rune
	lineStarts []int // code-point index of the first rune of each line
}

// New builds a Buffer from decoded source text.
func New(runes []rune) *Buffer {
	b := &Buffer{runes: runes, lineStarts: []int{0}}
	for i, r := range runes {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// NewFromString is a convenience constructor for already-decoded text.
func NewFromString(s string) *Buffer {
	return New([]rune(s))
}

// Len returns the number of code points in the buffer.
func (b *Buffer) Len() int { return len(b.runes) }

// At returns the code point at index, or 0 if index is out of range.
func (b *Buffer) At(index int) rune {
	if index < 0 || index >= len(b.runes) {
		return 0
	}
	return b.runes[index]
}

// Slice returns the code points in [start, end).
func (b *Buffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if start >= end {
		return nil
	}
	return b.runes[start:end]
}

// LineCol converts a code-point index into a 1-based (line, column) pair,
// counting columns in code points from the start of the line.
func (b *Buffer) LineCol(index int) (line, col int) {
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > index
	})
	line = i // lineStarts[0]==0 corresponds to line 1, so i is already 1-based count
	return line, index - b.lineStarts[i-1] + 1
}
