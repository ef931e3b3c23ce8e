package file

import (
	"context"

	"github.com/nxadm/tail"
	"github.com/saylorsolutions/tokstream/pkg/lexer"
	"github.com/saylorsolutions/tokstream/pkg/source"
	"github.com/saylorsolutions/tokstream/pkg/token"
)

// Source behaves the same as CtxSource, except that it will use
// context.Background as the context.
func Source(filename string) (token.Source, error) {
	_, s, err := ctxSource(context.Background(), filename)
	return s, err
}

// CtxSource creates a token.Source over the lines of filename, following the
// file as it grows. Each line is lexed independently, and an EOL token is
// emitted after each line. The source only ends when the context is
// cancelled, so this is an effectively unbounded stream: consumers should
// read it through a window and never wait for EOF.
func CtxSource(ctx context.Context, filename string) (token.Source, error) {
	_, s, err := ctxSource(ctx, filename)
	return s, err
}

func ctxSource(ctx context.Context, filename string) (*tail.Tail, token.Source, error) {
	t, err := tail.TailFile(filename, tail.Config{
		ReOpen:    true,
		MustExist: true,
		Follow:    true,
	})
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan token.Token)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case l, ok := <-t.Lines:
				if !ok {
					return
				}
				for _, tok := range lexLine(l.Text, l.Num) {
					select {
					case <-ctx.Done():
						return
					case ch <- tok:
					}
				}
			}
		}
	}()
	return t, source.FromChannel(filename, ch), nil
}

// lexLine tokenizes a single line, dropping the per-line EOF and appending
// an EOL token so line boundaries survive in the stream.
func lexLine(text string, line int) []token.Token {
	lx := lexer.String(text)
	go lx.Lex()

	var toks []token.Token
	for tok := range lx.Tokens() {
		if tok.Type() == token.EOF {
			break
		}
		if ct, ok := tok.(*token.Common); ok {
			ct.Line = line
		}
		toks = append(toks, tok)
	}
	eol := token.New(token.TEol, "\n")
	eol.Line = line
	return append(toks, eol)
}
