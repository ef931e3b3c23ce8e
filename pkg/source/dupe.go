package source

import (
	"context"

	"github.com/saylorsolutions/tokstream/pkg/token"
	"golang.org/x/sync/semaphore"
)

// Dupe takes over src and branches it into two identical sources. Every
// token produced by src is delivered to both, so one side can feed a parser
// while the other records or inspects the same stream. It's not advised to
// read from a source that has been passed to Dupe, use the returned sources
// instead.
func Dupe(src token.Source) (token.Source, token.Source) {
	a := make(chan token.Token)
	b := make(chan token.Token)

	go func() {
		sem := semaphore.NewWeighted(2)
		ctx := context.Background()

		defer func() {
			_ = sem.Acquire(ctx, 2)
			close(a)
			close(b)
		}()
		for {
			t := src.NextToken()
			if t.Type() == token.EOF {
				return
			}
			_ = sem.Acquire(ctx, 1)
			go func() {
				defer sem.Release(1)
				a <- t
			}()
			_ = sem.Acquire(ctx, 1)
			go func() {
				defer sem.Release(1)
				b <- t
			}()
		}
	}()
	return FromChannel(src.SourceName(), a), FromChannel(src.SourceName(), b)
}
