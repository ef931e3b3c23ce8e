package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saylorsolutions/tokstream/pkg/stream"
	"github.com/saylorsolutions/tokstream/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxSource(t *testing.T) {
	td := t.TempDir()
	logFile := filepath.Join(td, "test.log")
	require.NoError(t, os.WriteFile(logFile, []byte("alpha beta\ngamma 12\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_tail, src, err := ctxSource(ctx, logFile)
	require.NoError(t, err)
	require.NotNil(t, _tail)
	require.NotNil(t, src)
	defer func() {
		assert.NoError(t, _tail.Stop())
	}()

	expected := []struct {
		tt   token.Type
		text string
		line int
	}{
		{token.TIdent, "alpha", 1},
		{token.TIdent, "beta", 1},
		{token.TEol, "\n", 1},
		{token.TIdent, "gamma", 2},
		{token.TInt, "12", 2},
		{token.TEol, "\n", 2},
	}
	for _, want := range expected {
		tok := src.NextToken()
		assert.Equal(t, want.tt, tok.Type())
		assert.Equal(t, want.text, tok.Text())
		if ct, ok := tok.(*token.Common); ok {
			assert.Equal(t, want.line, ct.Line, "Tokens should carry the tailed line number")
		}
	}

	// the file is being followed, so the stream does not end on its own
	cancel()
	assert.Equal(t, token.EOF, src.NextToken().Type())
}

func TestCtxSource_ThroughWindow(t *testing.T) {
	td := t.TempDir()
	logFile := filepath.Join(td, "test.log")
	require.NoError(t, os.WriteFile(logFile, []byte("a b c\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_tail, src, err := ctxSource(ctx, logFile)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, _tail.Stop())
	}()

	w := stream.NewSize(src, 2)
	lt, err := w.LT(2)
	require.NoError(t, err)
	assert.Equal(t, "b", lt.Text())
	require.NoError(t, w.Consume())
	prev, err := w.LT(-1)
	require.NoError(t, err)
	assert.Equal(t, "a", prev.Text())

	// release the producer goroutine before stopping the tailer
	cancel()
}

func TestCtxSource_MissingFile(t *testing.T) {
	_, err := Source(filepath.Join(t.TempDir(), "nope.log"))
	assert.Error(t, err)
}
