// Package parser implements the streaming output parser: it watches a live
// subprocess byte stream for a completion sentinel and for embedded
// <event topic="...">...</event> markers, without ever withholding bytes
// from the terminal.
//
// A Parser is a one-shot, single-iteration observer. The executor
// creates one per subprocess invocation, feeds it every byte the child
// writes (via Write, so it can sit in an io.MultiWriter next to the raw
// output sink), and calls Finalize once the child has exited to resolve
// any marker left dangling at end of stream.
package parser
