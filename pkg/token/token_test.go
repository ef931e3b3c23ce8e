package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommon(t *testing.T) {
	tok := New(TIdent, "name")
	assert.Equal(t, TIdent, tok.Type())
	assert.Equal(t, "name", tok.Text())
	assert.Equal(t, -1, tok.Index(), "An unstamped token should report index -1")

	tok.SetIndex(12)
	assert.Equal(t, 12, tok.Index())
	assert.Equal(t, "[@12,Ident,'name']", tok.String())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "Number", TNumber.String())
	assert.Equal(t, "Type(99)", Type(99).String())
}

func TestInterval(t *testing.T) {
	iv := NewInterval(3, 7)
	assert.Equal(t, "3..7", iv.String())
}
