package sb

import (
	"fmt"
	"strconv"
	"strings"
)

type argKind uint8

const (
	kindText argKind = iota + 1
	kindInt
	kindChar
)

func (k argKind) String() string {
	switch k {
	case kindText:
		return "text"
	case kindInt:
		return "integer"
	case kindChar:
		return "character"
	default:
		return "invalid"
	}
}

// Arg is one Appendf argument. The set of kinds is closed: text (Str, Bytes),
// integer (Int, Int64) and character (Char).
type Arg struct {
	kind  argKind
	text  string
	bytes []byte
	num   int64
	char  byte
}

// Str returns a text argument for %s.
func Str(s string) Arg { return Arg{kind: kindText, text: s} }

// Bytes returns a text argument for %s that is appended without conversion.
func Bytes(p []byte) Arg { return Arg{kind: kindText, bytes: p} }

// Int returns an integer argument for %d.
func Int(n int) Arg { return Arg{kind: kindInt, num: int64(n)} }

// Int64 returns an integer argument for %d.
func Int64(n int64) Arg { return Arg{kind: kindInt, num: n} }

// Char returns a single-byte argument for %c.
func Char(c byte) Arg { return Arg{kind: kindChar, char: c} }

// ArgList is a packed argument sequence consumed front to back by VAppendf.
// Passing the same list to several calls continues where the previous call
// stopped.
type ArgList struct {
	args []Arg
	next int
}

// Args packs args into an ArgList.
func Args(args ...Arg) *ArgList {
	return &ArgList{args: args}
}

// Remaining returns how many arguments have not been consumed.
func (l *ArgList) Remaining() int {
	if l == nil {
		return 0
	}
	return len(l.args) - l.next
}

// take consumes the next argument, which must be of kind want.
func (l *ArgList) take(verb byte, want argKind, off int) (Arg, error) {
	if l.Remaining() == 0 {
		return Arg{}, fmt.Errorf("%w: %%%c at offset %d", ErrMissingArg, verb, off)
	}
	a := l.args[l.next]
	if a.kind != want {
		return Arg{}, fmt.Errorf("%w: %%%c at offset %d wants %s, got %s", ErrArgKind, verb, off, want, a.kind)
	}
	l.next++
	return a, nil
}

// Appendf expands format into the chain. Recognized directives are %s (text),
// %d (base-10 integer), %c (one byte) and %% (a literal '%'). Literal text
// between directives is appended verbatim. Surplus arguments are ignored.
//
// Unknown directives and a trailing lone '%' are dropped unless the builder
// was created with StrictDirectives. Text produced before a failing directive
// stays in the chain.
func (b *Builder) Appendf(format string, args ...Arg) error {
	return b.VAppendf(format, Args(args...))
}

// VAppendf is Appendf for callers that already hold a packed argument list.
func (b *Builder) VAppendf(format string, list *ArgList) error {
	if err := b.check(); err != nil {
		return err
	}

	i := 0
	for i < len(format) {
		n := strings.IndexByte(format[i:], '%')
		if n < 0 {
			n = len(format) - i
		}
		if _, err := appendTo(b, format[i:i+n]); err != nil {
			return err
		}
		i += n
		if i == len(format) {
			break
		}

		// format[i] is '%'
		if i+1 == len(format) {
			if b.strict {
				return fmt.Errorf("%w at offset %d", ErrTrailingPercent, i)
			}
			break
		}
		if err := b.directive(format[i+1], list, i); err != nil {
			return err
		}
		i += 2
	}
	return nil
}

// directive expands the directive whose '%' sits at template offset off.
func (b *Builder) directive(verb byte, list *ArgList, off int) error {
	switch verb {
	case 's':
		a, err := list.take(verb, kindText, off)
		if err != nil {
			return err
		}
		if a.bytes != nil {
			_, err = appendTo(b, a.bytes)
		} else {
			_, err = appendTo(b, a.text)
		}
		return err
	case 'd':
		a, err := list.take(verb, kindInt, off)
		if err != nil {
			return err
		}
		var scratch [20]byte
		_, err = appendTo(b, strconv.AppendInt(scratch[:0], a.num, 10))
		return err
	case 'c':
		a, err := list.take(verb, kindChar, off)
		if err != nil {
			return err
		}
		return b.appendByte(a.char)
	case '%':
		return b.appendByte('%')
	default:
		if b.strict {
			return fmt.Errorf("%w: %%%c at offset %d", ErrUnknownDirective, verb, off)
		}
		return nil
	}
}
