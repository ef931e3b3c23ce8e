// Package stream provides a windowed token stream for parsers that need
// bounded lookahead and bounded backtracking over a token source of unknown
// length. Only a moving window of the stream is held in memory: tokens are
// fetched lazily from the source, and already-consumed tokens are discarded
// as soon as no marks are outstanding.
package stream

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/tokstream/pkg/token"
)

const defaultWindowSize = 256

// Marker is the opaque handle returned by Window.Mark. It encodes the mark
// nesting depth so that out-of-order release is detected structurally.
type Marker struct {
	value int
}

// Window is a moving buffer over a token.Source. While a mark is held the
// window only grows, keeping every fetched position addressable for Seek.
// Without marks, Consume flushes the window whenever the cursor reaches the
// last buffered token, so sequential consumption runs in constant memory.
//
// A Window is not safe for concurrent use.
type Window struct {
	src token.Source
	log hclog.Logger

	// tokens[0:n] is a contiguous slice of the logical stream starting at
	// absolute position bufferStart(). tokens[p] is the LT(1) token; p == n
	// means the window is exhausted at the current position.
	tokens []token.Token
	n      int
	p      int

	// Counts up with Mark and down with Release. Compaction is suspended
	// while greater than zero.
	numMarkers int

	// lastToken answers LT(-1) for the current position.
	// lastTokenBufferStart answers LT(-1) for the first token in the window,
	// surviving compactions that reset p to 0.
	lastToken            token.Token
	lastTokenBufferStart token.Token

	// Absolute index of the token LT(1) would return. The stream size is
	// unknown before the end is reached.
	currentTokenIndex int
}

type Option func(*Window)

// WithLogger attaches a logger for window lifecycle events. The default
// discards everything.
func WithLogger(log hclog.Logger) Option {
	return func(w *Window) {
		w.log = log.Named("window")
	}
}

// New creates a Window with the default initial capacity and primes it with
// one token from src.
func New(src token.Source, opts ...Option) *Window {
	return NewSize(src, defaultWindowSize, opts...)
}

// NewSize is New with an explicit initial capacity. The capacity only bounds
// memory while no marks are held; it doubles as demand requires.
func NewSize(src token.Source, size int, opts ...Option) *Window {
	if size < 1 {
		size = defaultWindowSize
	}
	w := &Window{
		src:    src,
		log:    hclog.NewNullLogger(),
		tokens: make([]token.Token, size),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.fill(1)
	return w
}

// Source returns the underlying token producer.
func (w *Window) Source() token.Source {
	return w.src
}

func (w *Window) SourceName() string {
	return w.src.SourceName()
}

// bufferStart is the absolute index of tokens[0], derived so the invariant
// bufferStart == currentTokenIndex - p cannot drift.
func (w *Window) bufferStart() int {
	return w.currentTokenIndex - w.p
}

// fill fetches up to count tokens from the source and appends them. It
// returns the number actually appended, which is less than count only when
// an EOF token is already the last buffered token. Once an EOF is buffered
// the source is never called again.
func (w *Window) fill(count int) int {
	for i := 0; i < count; i++ {
		if w.n > 0 && w.tokens[w.n-1].Type() == token.EOF {
			return i
		}
		w.add(w.src.NextToken())
	}
	return count
}

// add appends one token, doubling capacity when full. Tokens supporting the
// token.Writable capability are stamped with their absolute index here, and
// nowhere else.
func (w *Window) add(t token.Token) {
	if w.n >= len(w.tokens) {
		grown := make([]token.Token, len(w.tokens)*2)
		copy(grown, w.tokens[:w.n])
		w.tokens = grown
		w.log.Trace("Grew token window", "capacity", len(w.tokens))
	}
	if wt, ok := t.(token.Writable); ok {
		wt.SetIndex(w.bufferStart() + w.n)
	}
	w.tokens[w.n] = t
	w.n++
}

// sync ensures the window holds a token at position p+want-1, fetching the
// shortfall if there is one. Fetching is always lazy and exactly sufficient
// for the request.
func (w *Window) sync(want int) {
	need := (w.p + want - 1) - w.n + 1
	if need > 0 {
		w.fill(need)
	}
}

// LT returns the token i positions ahead of the current position without
// consuming it. LT(1) is the next token to be consumed. Lookahead past the
// end of a finite stream returns the EOF token. LT(-1) is the most recently
// consumed token; other non-positive distances are malformed.
func (w *Window) LT(i int) (token.Token, error) {
	if i == -1 {
		return w.lastToken, nil
	}
	if i < 1 {
		return nil, fmt.Errorf("%w: LT(%d)", ErrInvalidPosition, i)
	}
	w.sync(i)
	index := w.p + i - 1
	if index >= w.n {
		// fill stopped short, so the final slot holds the EOF token
		return w.tokens[w.n-1], nil
	}
	return w.tokens[index], nil
}

// LA returns the type of LT(i).
func (w *Window) LA(i int) (token.Type, error) {
	t, err := w.LT(i)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, fmt.Errorf("%w: LA(%d) before any token was consumed", ErrInvalidPosition, i)
	}
	return t.Type(), nil
}

// Get returns the token at an absolute stream index, which must still be
// within the window. This is bounded random access, not a general stream
// accessor: compacted-away and not-yet-fetched positions fail.
func (w *Window) Get(i int) (token.Token, error) {
	start := w.bufferStart()
	if i < start || i >= start+w.n {
		return nil, fmt.Errorf("%w: get(%d) outside %d..%d", ErrOutOfWindow, i, start, start+w.n)
	}
	return w.tokens[i-start], nil
}

// Consume advances the stream by one token. Consuming the EOF token is a
// contract violation. When the cursor is on the last buffered token and no
// marks are held, the window is flushed so filling restarts at slot 0.
func (w *Window) Consume() error {
	la, err := w.LA(1)
	if err != nil {
		return err
	}
	if la == token.EOF {
		return fmt.Errorf("%w: cannot consume EOF", ErrProtocolViolation)
	}

	// the constructor primed the window, so tokens[p] is always valid here
	w.lastToken = w.tokens[w.p]

	if w.p == w.n-1 && w.numMarkers == 0 {
		w.n = 0
		w.p = -1 // p++ below leaves this at 0
		w.lastTokenBufferStart = w.lastToken
	}

	w.p++
	w.currentTokenIndex++
	w.sync(1)
	return nil
}

// Mark suspends window compaction until the returned Marker is released.
// Marks nest, and must be released innermost-first. A mark does not record a
// rewind point; callers record Index() themselves and Seek back to it.
func (w *Window) Mark() Marker {
	if w.numMarkers == 0 {
		w.lastTokenBufferStart = w.lastToken
	}
	m := Marker{value: -w.numMarkers - 1}
	w.numMarkers++
	return m
}

// Release ends the mark region for m, which must be the innermost
// outstanding mark. Releasing the last mark compacts the window: tokens
// before the cursor are discarded and the cursor returns to slot 0.
func (w *Window) Release(m Marker) error {
	expected := -w.numMarkers
	if m.value != expected {
		return fmt.Errorf("%w: release called with an invalid marker", ErrProtocolViolation)
	}
	w.numMarkers--
	if w.numMarkers == 0 {
		if w.p > 0 {
			copy(w.tokens, w.tokens[w.p:w.n])
			w.n -= w.p
			w.p = 0
			w.log.Trace("Compacted token window", "start", w.currentTokenIndex, "size", w.n)
		}
		w.lastTokenBufferStart = w.lastToken
	}
	return nil
}

// Index returns the absolute stream index of the LT(1) token.
func (w *Window) Index() int {
	return w.currentTokenIndex
}

// Seek repositions the stream at an absolute index. Seeking forward fetches
// up to the target, clamped to the last token of a finite stream. The target
// must be within the window: positions compacted away are irrecoverable.
func (w *Window) Seek(index int) error {
	if index == w.currentTokenIndex {
		return nil
	}
	if index < 0 {
		return fmt.Errorf("%w: cannot seek to negative index %d", ErrInvalidPosition, index)
	}

	if index > w.currentTokenIndex {
		w.sync(index - w.currentTokenIndex)
		if last := w.bufferStart() + w.n - 1; index > last {
			index = last
		}
	}

	start := w.bufferStart()
	i := index - start
	if i < 0 || i >= w.n {
		return fmt.Errorf("%w: seek(%d) outside %d..%d", ErrOutOfWindow, index, start, start+w.n)
	}

	w.p = i
	w.currentTokenIndex = index
	if w.p == 0 {
		w.lastToken = w.lastTokenBufferStart
	} else {
		w.lastToken = w.tokens[w.p-1]
	}
	return nil
}

// Size is unsupported: a lazily fetched stream cannot know its length.
func (w *Window) Size() (int, error) {
	return 0, fmt.Errorf("%w: unbuffered stream cannot know its size", ErrUnsupportedQuery)
}

// Text is unsupported: the window does not retain enough history to
// reconstruct the full stream text. The result is always empty.
func (w *Window) Text() (string, error) {
	return "", fmt.Errorf("%w: window does not retain full stream text", ErrUnsupportedQuery)
}

// TextInterval concatenates the text of the tokens in an inclusive absolute
// range, all of which must still be within the window.
func (w *Window) TextInterval(iv token.Interval) (string, error) {
	start := w.bufferStart()
	stop := start + w.n - 1
	if iv.Start < start || iv.Stop > stop {
		return "", fmt.Errorf("%w: interval %s not in token window %d..%d", ErrOutOfWindow, iv, start, stop)
	}

	var sb strings.Builder
	for i := iv.Start; i <= iv.Stop; i++ {
		sb.WriteString(w.tokens[i-start].Text())
	}
	return sb.String(), nil
}

// TextBetween is TextInterval over the absolute indexes of two tokens.
func (w *Window) TextBetween(start, stop token.Token) (string, error) {
	return w.TextInterval(token.NewInterval(start.Index(), stop.Index()))
}

// TextSpan is TextInterval over a collaborator's reported source interval.
func (w *Window) TextSpan(span token.Span) (string, error) {
	return w.TextInterval(span.SourceInterval())
}
