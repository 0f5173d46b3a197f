package compiler

import (
	"strconv"
	"strings"
)

// Context is the state shared by every descriptor during one compile pass.
//
// It holds the standalone instruction lines written by utilities and the
// declarations hoisted in front of the statement being compiled. The
// identifier counter increases monotonically across the whole pass so
// declared names never collide. A Context lives for exactly one call to
// [Compiler.Compile].
type Context struct {
	instructions []string
	decls        []string
	counter      int
}

// NewContext returns an empty context. The compiler creates one per pass;
// tests use it to drive descriptors directly.
func NewContext() *Context {
	return &Context{}
}

// Emit appends standalone instruction lines. Utilities terminate their
// final line with ";" themselves.
func (c *Context) Emit(lines ...string) {
	c.instructions = append(c.instructions, lines...)
}

// NextID returns a new identifier made of prefix and the next counter value
// (style1, style2, ...).
func (c *Context) NextID(prefix string) string {
	c.counter++
	return prefix + strconv.Itoa(c.counter)
}

// Declare hoists `const <name> = <expr>;` in front of the current statement
// and returns the generated name.
func (c *Context) Declare(prefix, expr string) string {
	name := c.NextID(prefix)
	c.decls = append(c.decls, "const "+name+" = "+strings.TrimSpace(expr)+";")
	return name
}

// takeInstructions drains the instruction buffer.
func (c *Context) takeInstructions() []string {
	out := c.instructions
	c.instructions = nil
	return out
}

// takeDecls drains the declaration buffer.
func (c *Context) takeDecls() []string {
	out := c.decls
	c.decls = nil
	return out
}

// Instructions returns the pending instruction lines.
func (c *Context) Instructions() []string {
	return append([]string(nil), c.instructions...)
}

// Declarations returns the pending declarations.
func (c *Context) Declarations() []string {
	return append([]string(nil), c.decls...)
}
