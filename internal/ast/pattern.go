package ast

import "github.com/leverr-lang/leverr/internal/diag"

// Pattern is a match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

// PatternInt matches an integer literal.
type PatternInt struct {
	Value int64
	span  diag.Span
}

func NewPatternInt(value int64, span diag.Span) *PatternInt {
	return &PatternInt{Value: value, span: span}
}
func (p *PatternInt) Span() diag.Span { return p.span }
func (*PatternInt) patternNode()      {}

// PatternFloat matches a float literal.
type PatternFloat struct {
	Value float64
	span  diag.Span
}

func NewPatternFloat(value float64, span diag.Span) *PatternFloat {
	return &PatternFloat{Value: value, span: span}
}
func (p *PatternFloat) Span() diag.Span { return p.span }
func (*PatternFloat) patternNode()      {}

// PatternString matches a string literal.
type PatternString struct {
	Value string
	span  diag.Span
}

func NewPatternString(value string, span diag.Span) *PatternString {
	return &PatternString{Value: value, span: span}
}
func (p *PatternString) Span() diag.Span { return p.span }
func (*PatternString) patternNode()      {}

// PatternBool matches a boolean literal.
type PatternBool struct {
	Value bool
	span  diag.Span
}

func NewPatternBool(value bool, span diag.Span) *PatternBool {
	return &PatternBool{Value: value, span: span}
}
func (p *PatternBool) Span() diag.Span { return p.span }
func (*PatternBool) patternNode()      {}

// PatternWildcard matches anything, binding nothing.
type PatternWildcard struct {
	span diag.Span
}

func NewPatternWildcard(span diag.Span) *PatternWildcard { return &PatternWildcard{span: span} }
func (p *PatternWildcard) Span() diag.Span               { return p.span }
func (*PatternWildcard) patternNode()                    {}

// PatternIdent matches anything, binding the subject to Name.
type PatternIdent struct {
	Name string
	span diag.Span
}

func NewPatternIdent(name string, span diag.Span) *PatternIdent {
	return &PatternIdent{Name: name, span: span}
}
func (p *PatternIdent) Span() diag.Span { return p.span }
func (*PatternIdent) patternNode()      {}

// PatternTag matches a tagged value by constructor name and sub-patterns.
type PatternTag struct {
	Name string
	Args []Pattern
	span diag.Span
}

func NewPatternTag(name string, args []Pattern, span diag.Span) *PatternTag {
	return &PatternTag{Name: name, Args: args, span: span}
}
func (p *PatternTag) Span() diag.Span { return p.span }
func (*PatternTag) patternNode()      {}

// PatternTuple matches a tuple of a fixed arity.
type PatternTuple struct {
	Elems []Pattern
	span  diag.Span
}

func NewPatternTuple(elems []Pattern, span diag.Span) *PatternTuple {
	return &PatternTuple{Elems: elems, span: span}
}
func (p *PatternTuple) Span() diag.Span { return p.span }
func (*PatternTuple) patternNode()      {}

// PatternRecordField is one `name: pattern` pair of a record pattern.
type PatternRecordField struct {
	Name    string
	Pattern Pattern
}

// PatternRecord matches a record that has at least the named fields; extra
// fields on the subject are ignored.
type PatternRecord struct {
	Fields []PatternRecordField
	span   diag.Span
}

func NewPatternRecord(fields []PatternRecordField, span diag.Span) *PatternRecord {
	return &PatternRecord{Fields: fields, span: span}
}
func (p *PatternRecord) Span() diag.Span { return p.span }
func (*PatternRecord) patternNode()      {}
