// Package stdstream provides token sources and sinks over the standard
// streams of the process.
package stdstream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/saylorsolutions/tokstream/pkg/lexer"
	"github.com/saylorsolutions/tokstream/pkg/source"
	"github.com/saylorsolutions/tokstream/pkg/token"
)

// SourceIn lexes each line of STDIN into tokens, with an EOL token after
// every line. The stream ends when STDIN is closed or the context is
// cancelled.
func SourceIn(ctx context.Context) token.Source {
	ch := make(chan token.Token)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(os.Stdin)

		var hasClosed bool
		go func() {
			<-ctx.Done()
			hasClosed = true
		}()

		line := 0
		for scanner.Scan() {
			if hasClosed {
				return
			}
			line++
			lx := lexer.String(scanner.Text())
			go lx.Lex()
			for tok := range lx.Tokens() {
				if tok.Type() == token.EOF {
					break
				}
				if ct, ok := tok.(*token.Common); ok {
					ct.Line = line
				}
				ch <- tok
			}
			eol := token.New(token.TEol, "\n")
			eol.Line = line
			ch <- eol
		}
	}()
	return source.FromChannel("<stdin>", ch)
}

// SinkOut writes each token of src to STDOUT, one per line, until EOF or
// context cancellation.
func SinkOut(ctx context.Context, src token.Source) error {
	return sink(ctx, src, os.Stdout)
}

// SinkErr behaves as SinkOut, writing to STDERR instead.
func SinkErr(ctx context.Context, src token.Source) error {
	return sink(ctx, src, os.Stderr)
}

func sink(ctx context.Context, src token.Source, out io.Writer) error {
	var hasCancelled bool
	go func() {
		<-ctx.Done()
		hasCancelled = true
	}()
	for {
		tok := src.NextToken()
		if tok.Type() == token.EOF {
			return nil
		}
		if hasCancelled {
			source.Drain(src)
			return nil
		}
		if _, err := fmt.Fprintf(out, "%s %q\n", tok.Type(), tok.Text()); err != nil {
			source.Drain(src)
			return err
		}
	}
}
