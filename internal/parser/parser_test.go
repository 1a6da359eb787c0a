package parser

import (
	"strings"
	"testing"
)

func TestParser_SentinelDetection(t *testing.T) {
	p := New("LOOP_COMPLETE")
	if _, err := p.Write([]byte("working...\nLOOP_COMPLETE\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !p.CompletionDetected() {
		t.Error("expected sentinel to be detected")
	}
}

func TestParser_SentinelAcrossWriteBoundary(t *testing.T) {
	p := New("LOOP_COMPLETE")
	text := "still working LOOP_COMPLETE done"
	for i := 0; i < len(text); i++ {
		if _, err := p.Write([]byte{text[i]}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if !p.CompletionDetected() {
		t.Error("expected sentinel split across many single-byte writes to be detected")
	}
}

func TestParser_NoSentinel(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte("still going"))
	p.Finalize()
	if p.CompletionDetected() {
		t.Error("did not expect sentinel detection")
	}
}

func TestParser_ExtractsWellFormedEvent(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`before <event topic="impl.done">ok</event> after`))
	p.Finalize()

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Topic != "impl.done" || events[0].Payload != "ok" || events[0].Target != "" {
		t.Errorf("got %+v", events[0])
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings())
	}
}

func TestParser_ExtractsTargetAttribute(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event topic="handoff" target="rev">see here</event>`))
	p.Finalize()

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Target != "rev" {
		t.Errorf("Target = %q, want rev", events[0].Target)
	}
}

func TestParser_AttributeOrderAndWhitespaceTolerant(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event   target = "rev"   topic="handoff" >body</event>`))
	p.Finalize()

	events := p.Events()
	if len(events) != 1 || events[0].Topic != "handoff" || events[0].Target != "rev" {
		t.Fatalf("got %+v", events)
	}
}

func TestParser_MultipleEventsInOrder(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event topic="a.one">1</event> middle <event topic="a.two">2</event>`))
	p.Finalize()

	events := p.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Topic != "a.one" || events[1].Topic != "a.two" {
		t.Errorf("events out of order: %+v", events)
	}
}

func TestParser_EventAcrossWriteBoundaries(t *testing.T) {
	p := New("LOOP_COMPLETE")
	full := `<event topic="impl.done">partial body</event>`
	for i := 0; i < len(full); i += 3 {
		end := i + 3
		if end > len(full) {
			end = len(full)
		}
		_, _ = p.Write([]byte(full[i:end]))
	}
	p.Finalize()

	events := p.Events()
	if len(events) != 1 || events[0].Payload != "partial body" {
		t.Fatalf("got %+v", events)
	}
}

func TestParser_MissingTopicAttributeIsWarningNotEvent(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event target="rev">no topic here</event>`))
	p.Finalize()

	if len(p.Events()) != 0 {
		t.Errorf("expected no extracted events, got %+v", p.Events())
	}
	if len(p.Warnings()) != 1 {
		t.Fatalf("expected one warning, got %v", p.Warnings())
	}
}

func TestParser_UnterminatedMarkerWithSentinelStillDetected(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event topic="impl.done"> body without close. LOOP_COMPLETE`))
	p.Finalize()

	if !p.CompletionDetected() {
		t.Error("expected sentinel to still be detected despite malformed marker")
	}
	if len(p.Events()) != 0 {
		t.Errorf("expected no extracted events, got %+v", p.Events())
	}
	if len(p.Warnings()) != 1 {
		t.Fatalf("expected one warning, got %v", p.Warnings())
	}
}

func TestParser_ResumesAfterMalformedMarker(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event no topic at all>x</event> then <event topic="real.one">good</event>`))
	p.Finalize()

	events := p.Events()
	if len(events) != 1 || events[0].Topic != "real.one" {
		t.Fatalf("got %+v", events)
	}
	if len(p.Warnings()) != 1 {
		t.Errorf("expected one warning, got %v", p.Warnings())
	}
}

func TestParser_NestedEventTagClosesAtFirstCloseTag(t *testing.T) {
	p := New("LOOP_COMPLETE")
	_, _ = p.Write([]byte(`<event topic="outer">has <event inside</event> tail`))
	p.Finalize()

	events := p.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !strings.Contains(events[0].Payload, "<event inside") {
		t.Errorf("expected raw nested tag text preserved in payload, got %q", events[0].Payload)
	}
}

func TestParser_BytesNeverWithheld(t *testing.T) {
	// The parser is a side-observer: writing never fails and never short-writes.
	p := New("LOOP_COMPLETE")
	chunk := []byte(`<event topic="a">b</event> raw trailing text`)
	n, err := p.Write(chunk)
	if err != nil || n != len(chunk) {
		t.Fatalf("Write() = (%d, %v), want (%d, nil)", n, err, len(chunk))
	}
}
