// ABOUTME: Tests for the processing screen
// ABOUTME: Validates step advancement, completion, navigation, failure, and retry

package processing

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/tuitest"
)

func newProcessing(g *tuitest.Gateway) *Processing {
	return New(context.Background(), tuitest.NewService(g), "s1", "https://cdn.example.com/u1/s1.jpg")
}

func TestProcessingStepsAdvanceAndClamp(t *testing.T) {
	p := newProcessing(&tuitest.Gateway{})

	if p.Status() != study.ProcessingSteps[0] {
		t.Errorf("expected first step, got %q", p.Status())
	}
	for i := 0; i < len(study.ProcessingSteps)+3; i++ {
		_, cmd := p.Update(stepMsg{owner: p})
		if cmd == nil {
			t.Fatal("expected the next tick to be scheduled")
		}
	}
	last := study.ProcessingSteps[len(study.ProcessingSteps)-1]
	if p.Status() != last {
		t.Errorf("expected clamped to %q, got %q", last, p.Status())
	}
	if p.Progress() >= 100 {
		t.Errorf("progress must stay below 100 before completion, got %.1f", p.Progress())
	}
}

func TestProcessingCompleteReplacesWithResults(t *testing.T) {
	g := &tuitest.Gateway{}
	p := newProcessing(g)

	processed := p.process()()
	_, cmd := p.Update(processed)
	if cmd == nil {
		t.Fatal("expected completion delay")
	}
	if p.Status() != "Complete!" || p.Progress() != 100 {
		t.Errorf("expected complete at 100%%, got %q %.0f", p.Status(), p.Progress())
	}
	if !strings.Contains(p.View(), "Complete!") {
		t.Error("expected Complete! in view")
	}
	if len(g.Processed) != 1 || g.Processed[0].SessionID != "s1" || g.Processed[0].ImageURL == "" {
		t.Errorf("unexpected process request %+v", g.Processed)
	}

	if _, cmd := p.Update(stepMsg{owner: p}); cmd != nil {
		t.Error("ticks must stop after completion")
	}

	_, cmd = p.Update(finishedMsg{owner: p})
	r, ok := cmd().(nav.ReplaceMsg)
	if !ok {
		t.Fatalf("expected ReplaceMsg, got %T", cmd())
	}
	if !r.Location.Equal(nav.Results("s1")) {
		t.Errorf("expected results/s1, got %v", r.Location)
	}
}

func TestProcessingFailureAndRetry(t *testing.T) {
	g := &tuitest.Gateway{Err: &client.RemoteError{StatusCode: 500, Message: "OCR failed"}}
	p := newProcessing(g)

	p.Update(p.process()())
	view := p.View()
	if !strings.Contains(view, "Processing failed: OCR failed") {
		t.Errorf("expected failure message\nView:\n%s", view)
	}
	if _, cmd := p.Update(stepMsg{owner: p}); cmd != nil {
		t.Error("ticks must stop after failure")
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if _, ok := cmd().(nav.BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}

	g.Err = nil
	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil || p.err != "" {
		t.Fatal("expected retry to restart processing")
	}
}

func TestProcessingMissingSession(t *testing.T) {
	p := New(context.Background(), tuitest.NewService(&tuitest.Gateway{}), "", "")
	if cmd := p.Init(); cmd != nil {
		t.Error("expected no commands without a session")
	}
	if !strings.Contains(p.View(), "missing session") {
		t.Errorf("expected missing session message\nView:\n%s", p.View())
	}
}

func TestProcessingIgnoresForeignMessages(t *testing.T) {
	p := newProcessing(&tuitest.Gateway{})
	other := newProcessing(&tuitest.Gateway{})

	p.Update(stepMsg{owner: other})
	p.Update(processedMsg{owner: other})
	_, cmd := p.Update(finishedMsg{owner: other})

	if p.step != 0 || p.done || cmd != nil {
		t.Error("messages for another screen must be ignored")
	}
}

func TestProcessingSpinnerStopsWhenDone(t *testing.T) {
	p := newProcessing(&tuitest.Gateway{})
	p.done = true
	if _, cmd := p.Update(spinner.TickMsg{}); cmd != nil {
		t.Error("spinner must stop after completion")
	}
}
