package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar_RendersCountAndDescription(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf)

	bar.Begin(Invocation{Description: "extracting", Total: 3, Workers: 1})
	bar.Tick()
	bar.Tick()
	bar.Tick()
	bar.End()

	out := buf.String()
	if !strings.Contains(out, "extracting") {
		t.Errorf("expected description in output, got: %q", out)
	}
	if !strings.Contains(out, "3/3") {
		t.Errorf("expected final count 3/3 in output, got: %q", out)
	}
}

func TestBar_ReusableAcrossInvocations(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf)

	bar.Begin(Invocation{Description: "first", Total: 1})
	bar.Tick()
	bar.End()

	buf.Reset()
	bar.Begin(Invocation{Description: "second", Total: 2})
	bar.Tick()
	bar.Tick()
	bar.End()

	out := buf.String()
	if !strings.Contains(out, "second") || !strings.Contains(out, "2/2") {
		t.Errorf("expected fresh bar for second invocation, got: %q", out)
	}
}

func TestBar_TickBeforeBeginIsHarmless(t *testing.T) {
	bar := NewBar(&bytes.Buffer{})
	bar.Tick()
	bar.End()
}

func TestDiscard_IgnoresEverything(t *testing.T) {
	Discard.Begin(Invocation{Total: 10})
	Discard.Tick()
	Discard.End()
}
