package token

import "fmt"

// Interval is an inclusive range of absolute token indexes.
type Interval struct {
	Start int
	Stop  int
}

func NewInterval(start, stop int) Interval {
	return Interval{Start: start, Stop: stop}
}

func (i Interval) String() string {
	return fmt.Sprintf("%d..%d", i.Start, i.Stop)
}

// Span is reported by structures that cover a range of the token stream,
// like a parsed rule.
type Span interface {
	SourceInterval() Interval
}
