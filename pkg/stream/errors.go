package stream

import "errors"

var (
	// ErrOutOfWindow means a requested absolute index or interval is not
	// within the currently buffered slice of the stream, either because it
	// was compacted away or because it lies beyond the fetched tail.
	ErrOutOfWindow = errors.New("index outside token window")
	// ErrInvalidPosition means a negative computed index or seek target.
	ErrInvalidPosition = errors.New("invalid stream position")
	// ErrProtocolViolation means the caller broke the windowing contract:
	// consuming past EOF, or releasing marks out of LIFO order.
	ErrProtocolViolation = errors.New("stream protocol violation")
	// ErrUnsupportedQuery means the stream cannot answer: total size and
	// unrestricted text are unknowable for a lazily fetched stream.
	ErrUnsupportedQuery = errors.New("unsupported stream query")
)
