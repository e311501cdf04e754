// Package text splits strings into the units used for alignment.
//
// Two granularities are provided:
//
//   - [Words] - each token is a run of non-whitespace followed by the
//     whitespace that trails it, so "Hello world" becomes "Hello " and "world"
//   - [Symbols] - alternating runs of non-whitespace and whitespace, so
//     "Hello world" becomes "Hello", " " and "world"
//
// Both are lossless: joining the returned tokens in order reproduces the
// input exactly. Whitespace is anything [unicode.IsSpace] reports as such.
package text
