package parser

import (
	"bytes"
	"fmt"
	"regexp"
)

// ExtractedEvent is a well-formed <event> marker pulled out of the stream.
type ExtractedEvent struct {
	// Topic is the value of the required topic attribute.
	Topic string

	// Target is the value of the optional target attribute, empty if absent.
	Target string

	// Payload is the raw text between the opening and closing tags.
	Payload string
}

const (
	openTagPrefix = "<event"
	closeTag      = "</event>"
)

// attrPattern matches permissive double-quoted attributes inside an opening
// tag, in any order, with tolerant whitespace: key="value".
var attrPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"([^"]*)"`)

// Parser watches a byte stream for a completion sentinel and <event>
// markers. It is not safe for concurrent use; the executor feeds it bytes
// from a single reader goroutine.
type Parser struct {
	sentinel  string
	buf       []byte
	cursor    int // offset into buf already scanned for marker starts
	completed bool
	events    []ExtractedEvent
	warnings  []string
}

// New creates a Parser that watches for the given completion sentinel.
func New(sentinel string) *Parser {
	return &Parser{sentinel: sentinel}
}

// Write implements io.Writer so the parser can sit in an io.MultiWriter
// alongside the raw output sink. It never returns an error or a short
// count: bytes are always accepted.
func (p *Parser) Write(chunk []byte) (int, error) {
	p.buf = append(p.buf, chunk...)

	if !p.completed && p.sentinel != "" && bytes.Contains(p.buf, []byte(p.sentinel)) {
		p.completed = true
	}

	p.scan(false)
	return len(chunk), nil
}

// Finalize must be called once the subprocess has exited and no further
// bytes will arrive. Any <event marker still open at end of stream is
// reported as a malformed (unterminated) marker.
func (p *Parser) Finalize() {
	p.scan(true)
}

// scan extracts every complete <event>...</event> block starting at
// p.cursor. When eof is true, a marker left open at the end of the buffer
// is treated as malformed rather than left pending.
func (p *Parser) scan(eof bool) {
	for {
		rel := bytes.Index(p.buf[p.cursor:], []byte(openTagPrefix))
		if rel < 0 {
			return
		}
		start := p.cursor + rel

		gt := bytes.IndexByte(p.buf[start:], '>')
		if gt < 0 {
			if eof {
				p.warnf(start, "unterminated event tag")
				p.cursor = start + len(openTagPrefix)
				continue
			}
			return // wait for more bytes
		}
		openTagEnd := start + gt + 1
		openTag := string(p.buf[start:openTagEnd])

		closeRel := bytes.Index(p.buf[openTagEnd:], []byte(closeTag))
		if closeRel < 0 {
			if eof {
				p.warnf(start, "unterminated event marker: missing closing </event>")
				p.cursor = start + len(openTagPrefix)
				continue
			}
			return // wait for more bytes
		}

		body := string(p.buf[openTagEnd : openTagEnd+closeRel])
		end := openTagEnd + closeRel + len(closeTag)

		topicVal, targetVal, ok := parseAttrs(openTag)
		if !ok {
			p.warnf(start, "malformed event marker: missing required topic attribute")
			p.cursor = start + len(openTagPrefix)
			continue
		}

		p.events = append(p.events, ExtractedEvent{Topic: topicVal, Target: targetVal, Payload: body})
		p.cursor = end
	}
}

func (p *Parser) warnf(offset int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, fmt.Sprintf("byte %d: %s", offset, msg))
}

// parseAttrs extracts the topic and target attributes from an opening tag
// such as `<event topic="impl.done" target="rev">`. ok is false if no
// topic attribute was present.
func parseAttrs(openTag string) (topicVal, targetVal string, ok bool) {
	for _, m := range attrPattern.FindAllStringSubmatch(openTag, -1) {
		switch m[1] {
		case "topic":
			topicVal = m[2]
		case "target":
			targetVal = m[2]
		}
	}
	return topicVal, targetVal, topicVal != ""
}

// CompletionDetected reports whether the sentinel has appeared anywhere in
// the stream so far.
func (p *Parser) CompletionDetected() bool {
	return p.completed
}

// Events returns the markers extracted so far, in source order.
func (p *Parser) Events() []ExtractedEvent {
	return p.events
}

// Warnings returns diagnostics for malformed markers encountered so far.
func (p *Parser) Warnings() []string {
	return p.warnings
}
