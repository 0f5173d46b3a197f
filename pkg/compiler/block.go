package compiler

import "github.com/matzehuels/visualencer/pkg/script"

// Block is the line buffer for one root's method chain.
//
// The first line opens the chain; every later line is a continuation call
// indented by [script.Indent]. Lines are append-only with one exception:
// the primary text slot. A root that sets its text with SetText reserves
// the slot, and later text children overwrite that line in place through
// PatchText instead of appending a second text call.
type Block struct {
	lines    []string
	textSlot int
	text     string
}

// NewBlock returns an empty block with no text slot.
func NewBlock() *Block {
	return &Block{textSlot: -1}
}

// Add appends lines to the block.
func (b *Block) Add(lines ...string) {
	b.lines = append(b.lines, lines...)
}

// Chain appends a continuation call built by [script.Chain].
func (b *Block) Chain(method string, opts script.Opts, args ...string) {
	b.Add(script.Chain(method, opts, args...))
}

// SetText appends line as the primary text call and records original as
// the root's own text, used as the fallback by children that set no text.
func (b *Block) SetText(original, line string) {
	b.textSlot = len(b.lines)
	b.text = original
	b.lines = append(b.lines, line)
}

// Text returns the root's original text and whether a slot is reserved.
func (b *Block) Text() (string, bool) {
	return b.text, b.textSlot >= 0
}

// PatchText overwrites the primary text line when the root reserved one and
// appends line otherwise. It reports whether an existing line was replaced.
func (b *Block) PatchText(line string) bool {
	if b.textSlot >= 0 && b.textSlot < len(b.lines) {
		b.lines[b.textSlot] = line
		return true
	}
	b.lines = append(b.lines, line)
	return false
}

// Lines returns a copy of the block's lines.
func (b *Block) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Len returns the number of lines.
func (b *Block) Len() int { return len(b.lines) }

// Empty reports whether the block has no lines.
func (b *Block) Empty() bool { return len(b.lines) == 0 }
