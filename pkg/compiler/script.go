package compiler

import (
	"fmt"
	"strings"
)

// StatementKind distinguishes method chains from standalone instructions.
type StatementKind string

const (
	StatementChain       StatementKind = "chain"
	StatementInstruction StatementKind = "instruction"
)

// Statement is the compiled output of one top-level node.
type Statement struct {
	Kind StatementKind `json:"kind"`
	Node string        `json:"node,omitempty"`
	Type string        `json:"type"`

	// Declarations are emitted immediately before Lines.
	Declarations []string `json:"declarations,omitempty"`
	Lines        []string `json:"lines"`
}

// Text renders the statement. A chain's last line receives the ";"
// terminator; instructions are already terminated.
func (s Statement) Text() string {
	var b strings.Builder
	for _, d := range s.Declarations {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	for i, l := range s.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	if s.Kind == StatementChain && len(s.Lines) > 0 {
		b.WriteByte(';')
	}
	return b.String()
}

// DiagnosticKind classifies why a node contributed no output.
type DiagnosticKind string

const (
	DiagUnknownType    DiagnosticKind = "unknown-type"
	DiagFamilyMismatch DiagnosticKind = "family-mismatch"
	DiagOrphanChild    DiagnosticKind = "orphan-child"
	DiagMisplacedNode  DiagnosticKind = "misplaced-node"
	DiagEmptyRoot      DiagnosticKind = "empty-root"
)

// Diagnostic is a non-fatal note about a node the compiler skipped.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Node    string         `json:"node,omitempty"`
	Type    string         `json:"type"`
	Parent  string         `json:"parent,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("%s: %s (%s): %s", d.Kind, d.Node, d.Type, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Type, d.Message)
}

// DiagnosticHandler receives diagnostics as they are produced.
type DiagnosticHandler func(Diagnostic)

// Script is the result of one compile pass.
type Script struct {
	Statements  []Statement  `json:"statements"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Standalone  bool         `json:"standalone,omitempty"`
}

// Script framing emitted around the body in standalone mode.
const (
	StandaloneHeader = "const seq = new Sequence();"
	StandaloneFooter = "seq.play();"
)

// String renders the script text: statements joined by newlines, framed by
// the sequence construction and play call in standalone mode. There is no
// trailing newline.
func (s *Script) String() string {
	parts := make([]string, 0, len(s.Statements)+2)
	if s.Standalone {
		parts = append(parts, StandaloneHeader)
	}
	for _, st := range s.Statements {
		parts = append(parts, st.Text())
	}
	if s.Standalone {
		parts = append(parts, StandaloneFooter)
	}
	return strings.Join(parts, "\n")
}

// Lines returns the rendered script split into lines.
func (s *Script) Lines() []string {
	out := s.String()
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Empty reports whether no statement was produced.
func (s *Script) Empty() bool { return len(s.Statements) == 0 }
