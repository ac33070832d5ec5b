package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndErases(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering dice plot...")
	s.out = &buf

	s.Start()
	time.Sleep(4 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering dice plot...") {
		t.Errorf("status line never drawn: %q", out)
	}
	drew := false
	for _, face := range spinnerFrames {
		if strings.Contains(out, face) {
			drew = true
			break
		}
	}
	if !drew {
		t.Errorf("no die face drawn: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("status line not erased: %q", out)
	}
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Rendering...")
	s.out = &bytes.Buffer{}

	s.Start()
	cancel()

	select {
	case <-s.parked:
	case <-time.After(time.Second):
		t.Fatal("spinner did not park after context cancel")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancel")
	}
}

func TestSpinnerStopsOnContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()

	select {
	case <-s.parked:
	case <-time.After(time.Second):
		t.Fatal("spinner did not park after timeout")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessages(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	s.StopWithSuccess("Saved figure")

	s = newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	s.StopWithError("Render failed")
}
