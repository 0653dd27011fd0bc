package main

import (
	"strconv"
	"strings"
)

// ExpandContext carries the substitution values for one expansion.
type ExpandContext struct {
	Value float64 // live reading
	Text  string  // source's own display form, including unit
	Name  string  // source's display name
}

// ExpandTemplate substitutes the placeholder tokens of a user string:
//
//	__    literal underscore
//	_Nv   reading with N decimal places (N any run of digits)
//	_v    reading with 0 decimal places
//	_t    source display text
//	_n    source display name
//
// Implemented as a single left-to-right scan so the escape sequence is
// consumed before it can pair with a following letter. Anything that does
// not match a token is copied verbatim; expansion never fails and running
// it again over placeholder-free output changes nothing.
func ExpandTemplate(tpl string, ctx ExpandContext) string {
	if tpl == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(tpl))

	for i := 0; i < len(tpl); {
		c := tpl[i]
		if c != '_' || i+1 >= len(tpl) {
			b.WriteByte(c)
			i++
			continue
		}

		switch next := tpl[i+1]; {
		case next == '_':
			b.WriteByte('_')
			i += 2
		case next == 'v':
			b.WriteString(formatReading(ctx.Value, 0))
			i += 2
		case next == 't':
			b.WriteString(ctx.Text)
			i += 2
		case next == 'n':
			b.WriteString(ctx.Name)
			i += 2
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tpl) && tpl[j] >= '0' && tpl[j] <= '9' {
				j++
			}
			if j < len(tpl) && tpl[j] == 'v' {
				prec, _ := strconv.Atoi(tpl[i+1 : j])
				b.WriteString(formatReading(ctx.Value, prec))
				i = j + 1
			} else {
				b.WriteByte('_')
				i++
			}
		default:
			b.WriteByte('_')
			i++
		}
	}

	return b.String()
}

func formatReading(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
