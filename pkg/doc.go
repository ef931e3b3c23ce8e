// Package pkg provides the core functionality of working with windowed token
// streams. This package (and subpackages) is a dependency of anything in the
// plugin package.
//   - The token package defines the Token data model and the Source producer interface.
//   - The stream package contains the windowed buffer that gives a parser bounded lookahead and backtracking.
//   - The lexer package turns text into tokens.
//   - The source package contains functions for creating and combining token sources.
package pkg
