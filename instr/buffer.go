package instr

import (
	"fmt"
	"io"

	"github.com/wazerojit/x86emit/opcode"
)

// Buffer is the growable, append-only instruction stream an emission
// context writes to. Dead-store elimination mutates already-appended
// records in place by setting their opcode to opcode.None; it never
// reorders or removes entries, so indices returned by Append remain stable
// for the buffer's lifetime.
type Buffer struct {
	records []Record
}

// NewBuffer returns an empty buffer pre-sized to hold capacity records;
// callers that can estimate a unit's instruction count up front should
// reserve it here rather than let repeated appends grow the slice.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{records: make([]Record, 0, capacity)}
}

// Len returns the number of records appended so far, including nulled ones.
func (b *Buffer) Len() int { return len(b.records) }

// Append adds r to the end of the buffer and returns its stable index.
func (b *Buffer) Append(r Record) int {
	b.records = append(b.records, r)
	return len(b.records) - 1
}

// At returns the record at index i.
func (b *Buffer) At(i int) Record { return b.records[i] }

// Null overwrites the opcode at index i with opcode.None, marking the
// instruction deleted without shifting any other index.
func (b *Buffer) Null(i int) {
	b.records[i].Op = opcode.None
}

// Range calls fn for every non-deleted record in emission order.
func (b *Buffer) Range(fn func(index int, r Record)) {
	for i, r := range b.records {
		if !r.Deleted() {
			fn(i, r)
		}
	}
}

// Dump writes an AT&T-ish assembly listing of every non-deleted record to
// w, one per line, for debugging.
func (b *Buffer) Dump(w io.Writer) error {
	for i, r := range b.records {
		if r.Deleted() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d: %s\n", i, r); err != nil {
			return err
		}
	}
	return nil
}
