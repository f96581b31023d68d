package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// captureCrash swaps the exit and output hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1

	prevOut, prevExit := crashOut, exitFunc
	crashOut = &out
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		crashOut, exitFunc = prevOut, prevExit
		SetCrashScreen(nil)
	})
	return &out, &code
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	out, code := captureCrash(t)
	HandleCrash(nil)

	if *code != -1 {
		t.Errorf("Expected no exit, got code %d", *code)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestHandleCrashReportsAndExits(t *testing.T) {
	out, code := captureCrash(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	SetCrashScreen(screen)

	HandleCrash("boom")

	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !strings.Contains(out.String(), "NODEFIELD CRASHED: boom") {
		t.Errorf("Expected crash banner, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Stack Trace:") {
		t.Error("Expected stack trace in report")
	}

	crashMu.Lock()
	cleared := crashScreen == nil
	crashMu.Unlock()
	if !cleared {
		t.Error("Expected crash screen to be released")
	}
}

func TestGoRecoversPanic(t *testing.T) {
	out, code := captureCrash(t)
	done := make(chan struct{})

	prevExit := exitFunc
	exitFunc = func(c int) {
		prevExit(c)
		close(done)
	}

	Go(func() { panic("poller") })
	<-done

	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !strings.Contains(out.String(), "poller") {
		t.Errorf("Expected panic value in report, got %q", out.String())
	}
}
