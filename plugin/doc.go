// Package plugin groups token producers and sinks that need more than what's
// provided in pkg. Splitting these out into their own, independent (except
// what's provided in pkg) packages means that they can be omitted in favor of
// a smaller build size if the functionality isn't needed.
//
// "Source" functions should return a token.Source and potentially an error,
// and operate asynchronously. Sources should close any resources, like file
// handles or channels, and stop the associated goroutine when they have
// reached the end of their input, producing EOF tokens from that point on.
//
// "Sink" functions should take a token.Source - and optionally other
// parameters - and operate synchronously. Sink functions should use
// source.Drain on a source if they encounter an error to prevent upstream
// blocking.
//
//	Current Plugins:
//	- file lexes a tailed file into an unbounded token stream.
//	- stdstream provides a STDIN token source and STDOUT/STDERR sinks.
//	- store records and replays token streams with SQLite.
package plugin
