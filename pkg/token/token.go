// Package token defines the lexical unit passed between a producer and the
// windowed stream, along with the producer interface itself.
package token

import "fmt"

type Type int

const (
	// EOF marks the end of a finite stream. A Source must keep returning an
	// EOF token once it has produced one.
	EOF Type = -1
)

const (
	TErr Type = iota + 1
	TEol
	TIdent
	TInt
	TNumber
	TString
	TLpar
	TRpar
	TEq
	TComma
	TDot
)

var typeStrings = map[Type]string{
	EOF:     "EOF",
	TErr:    "Err",
	TEol:    "EOL",
	TIdent:  "Ident",
	TInt:    "Int",
	TNumber: "Number",
	TString: "String",
	TLpar:   "Lpar",
	TRpar:   "Rpar",
	TEq:     "Eq",
	TComma:  "Comma",
	TDot:    "Dot",
}

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Token is the read-only view of a lexical unit.
type Token interface {
	Type() Type
	Text() string
	Index() int
}

// Writable is an optional capability. The stream stamps the absolute stream
// position onto tokens that support it; token representations without it are
// simply not stamped.
type Writable interface {
	Token
	SetIndex(i int)
}

// Source produces tokens one at a time. NextToken may block (on I/O for
// example), and must return an EOF token for every call after the first EOF
// of a finite stream. Infinite sources are legal.
type Source interface {
	NextToken() Token
	SourceName() string
}

// Common is the default Token implementation used by the lexer and plugins.
type Common struct {
	TokenType Type
	TokenText string
	Pos       int
	Line      int

	index int
}

var _ Writable = (*Common)(nil)

func New(tt Type, text string) *Common {
	return &Common{TokenType: tt, TokenText: text, index: -1}
}

func (t *Common) Type() Type {
	return t.TokenType
}

func (t *Common) Text() string {
	return t.TokenText
}

func (t *Common) Index() int {
	return t.index
}

func (t *Common) SetIndex(i int) {
	t.index = i
}

func (t *Common) String() string {
	return fmt.Sprintf("[@%d,%s,'%s']", t.index, t.TokenType, t.TokenText)
}
