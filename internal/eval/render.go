package eval

import (
	"strconv"
	"strings"
)

// Render formats v per the spec's runtime output format: the shape a file
// run or a REPL evaluation writes for its top-level value, and what the
// `to_string`/`print` built-ins fall back to for non-string values.
func Render(v Value) string {
	var b strings.Builder
	render(&b, v)
	return b.String()
}

func render(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case *IntV:
		b.WriteString(strconv.FormatInt(val.Value, 10))
	case *FloatV:
		b.WriteString(strconv.FormatFloat(val.Value, 'g', -1, 64))
	case *StringV:
		b.WriteByte('"')
		b.WriteString(val.Value)
		b.WriteByte('"')
	case *BoolV:
		if val.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *UnitV:
		b.WriteString("()")
	case *ListV:
		b.WriteByte('[')
		for i, e := range val.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, e)
		}
		b.WriteByte(']')
	case *TupleV:
		b.WriteByte('(')
		for i, e := range val.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, e)
		}
		b.WriteByte(')')
	case *RecordV:
		b.WriteString("{ ")
		for i, f := range val.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			render(b, f.Value)
		}
		b.WriteString(" }")
	case *TagV:
		b.WriteString(val.Name)
		if len(val.Args) > 0 {
			b.WriteByte('(')
			for i, a := range val.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				render(b, a)
			}
			b.WriteByte(')')
		}
	case *ClosureV:
		b.WriteString("<closure>")
	case *BuiltinV:
		b.WriteString("<builtin:" + val.Name + ">")
	default:
		b.WriteString("<?>")
	}
}
