// Package script provides the literal-building helpers used to emit
// Sequencer macro text.
//
// Every value interpolated into generated code passes through one of these
// helpers, which guarantees the output never contains NaN, undefined or
// broken string literals:
//
//   - [Number] / [Num]: total numeric coercion, 0 for anything non-finite
//   - [Escape] / [Quote]: double-quoted string literals (backslash first,
//     then double quote)
//   - [EscapeBackticks]: template literals used by free-form text fields
//   - [EaseDelay]: the `{ ease, delay }` option bag shared by fade and
//     rotate style calls
//
// The builders [Opts], [Chain] and [Stmt] produce the two line shapes the
// compiler emits: two-space indented chained calls and semicolon-terminated
// standalone statements.
package script

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Indent is the continuation indent of a chained call.
const Indent = "  "

// Sequence is the identifier of the sequence variable every statement is
// called on.
const Sequence = "seq"

// String converts v to text the way the target runtime does for template
// interpolation. Absent values become "".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return FormatNumber(Parse(x))
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return FormatNumber(Parse(x))
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Escape returns v as text safe to place between double quotes.
// Backslashes are doubled before quotes are escaped; the reverse order
// would double-escape the backslashes inserted for quotes.
func Escape(v any) string {
	s := String(v)
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Quote returns v as a complete double-quoted literal.
func Quote(v any) string {
	return `"` + Escape(v) + `"`
}

// EscapeBackticks escapes only backtick characters. It is used for values
// placed inside template literals, where backslashes and double quotes are
// legal as-is.
func EscapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

// Template returns s as a complete template literal.
func Template(s string) string {
	return "`" + EscapeBackticks(s) + "`"
}

// Point renders a `{ x: X, y: Y }` literal with both coordinates coerced.
func Point(x, y any) string {
	return "{ x: " + Num(x) + ", y: " + Num(y) + " }"
}

// Opts collects `key: literal` fragments for a trailing option bag.
// Fragments keep insertion order; callers add them in a fixed order so the
// emitted text is stable.
type Opts []string

// Add appends a `key: literal` fragment.
func (o *Opts) Add(key, literal string) {
	*o = append(*o, key+": "+literal)
}

// Empty reports whether no fragment was added.
func (o Opts) Empty() bool { return len(o) == 0 }

// String renders the bag as `{ k: v, k2: v2 }`, or "" when empty.
func (o Opts) String() string {
	if len(o) == 0 {
		return ""
	}
	return "{ " + strings.Join(o, ", ") + " }"
}

// EaseDelay builds the option bag for an optional easing curve and delay.
// The ease key is emitted when ease is non-blank, the delay key when delay
// is a finite non-zero number, always in that order. The bag is empty when
// neither applies.
func EaseDelay(ease, delay any) Opts {
	var o Opts
	if Truthy(ease) && strings.TrimSpace(String(ease)) != "" {
		o.Add("ease", Quote(ease))
	}
	if d, ok := Finite(delay); ok && d != 0 {
		o.Add("delay", FormatNumber(d))
	}
	return o
}

// Chain renders a continuation line `  .method(args)`. When opts is
// non-empty the bag is appended as the last argument.
func Chain(method string, opts Opts, args ...string) string {
	if !opts.Empty() {
		args = append(args, opts.String())
	}
	return Indent + "." + method + "(" + strings.Join(args, ", ") + ")"
}

// Open renders the first line of a chain, `seq.method(args)`.
func Open(method string, args ...string) string {
	return Sequence + "." + method + "(" + strings.Join(args, ", ") + ")"
}

// Stmt renders a standalone statement, `seq.method(args);`.
func Stmt(method string, args ...string) string {
	return Open(method, args...) + ";"
}

var returnRe = regexp.MustCompile(`\breturn\b`)

// HasReturn reports whether body contains a return statement.
func HasReturn(body string) bool {
	return returnRe.MatchString(body)
}

// Body normalizes user-supplied code: line endings become "\n" and leading
// or trailing blank lines are dropped.
func Body(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimRight(s, " \t\n")
	return strings.TrimLeft(s, "\n")
}

// IndentLines prefixes every non-blank line of body with prefix. Blank
// lines stay empty so the output carries no trailing whitespace.
func IndentLines(body, prefix string) []string {
	if body == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			out[i] = ""
			continue
		}
		out[i] = prefix + l
	}
	return out
}
