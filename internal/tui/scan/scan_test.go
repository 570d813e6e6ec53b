// ABOUTME: Tests for the scan tab
// ABOUTME: Validates selection, upload, recent-image tracking, and failure display

package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/filepicker"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/nav"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/recentfiles"
	"github.com/Zubimendi/neurostudy/cli/internal/tui/tuitest"
)

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("\xff\xd8\xff fake jpeg"), 0644); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func newScan(t *testing.T, g *tuitest.Gateway) (*Scan, *recentfiles.RecentFiles) {
	t.Helper()
	recent := recentfiles.New(t.TempDir())
	return New(context.Background(), tuitest.NewService(g), recent, t.TempDir()), recent
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScanInitialView(t *testing.T) {
	s, _ := newScan(t, &tuitest.Gateway{})
	view := s.View()

	for _, expected := range []string{"Scan Textbook Page", "Enter path...", "Browse"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\nView:\n%s", expected, view)
		}
	}
}

func TestScanProcessWithoutImage(t *testing.T) {
	s, _ := newScan(t, &tuitest.Gateway{})

	s.Update(key("p"))
	if !strings.Contains(s.View(), "Please select an image first") {
		t.Errorf("expected selection prompt\nView:\n%s", s.View())
	}
}

func TestScanUploadPushesProcessing(t *testing.T) {
	g := &tuitest.Gateway{}
	s, recent := newScan(t, g)
	path := writeImage(t, t.TempDir(), "page.jpg")

	s.Update(filepicker.FileSelectedMsg{Path: path, Size: 16})
	if s.Selected() != path {
		t.Fatalf("expected selection %q, got %q", path, s.Selected())
	}
	if !strings.Contains(s.View(), "page.jpg") {
		t.Error("expected selected file name in view")
	}

	_, cmd := s.Update(key("enter"))
	if !strings.Contains(s.View(), "Uploading...") {
		t.Error("expected uploading view")
	}

	uploaded, ok := tuitest.Find[uploadedMsg](tuitest.Collect(cmd))
	if !ok {
		t.Fatal("expected upload result")
	}
	_, cmd = s.Update(uploaded)

	push, ok := cmd().(nav.PushMsg)
	if !ok {
		t.Fatalf("expected PushMsg, got %T", cmd())
	}
	if !push.Location.Equal(nav.Processing) {
		t.Errorf("expected processing, got %v", push.Location)
	}
	if push.Params[ParamSessionID] != "s1" || push.Params[ParamImageURL] != "https://cdn.example.com/u1/s1.jpg" {
		t.Errorf("unexpected params %v", push.Params)
	}
	if len(g.Uploads) != 1 || g.Uploads[0] != "page.jpg" {
		t.Errorf("expected page.jpg uploaded, got %v", g.Uploads)
	}
	if list := recent.List(); len(list) != 1 || list[0] != path {
		t.Errorf("expected %s in recent images, got %v", path, list)
	}
}

func TestScanUploadFailureShowsMessage(t *testing.T) {
	g := &tuitest.Gateway{Err: &client.RemoteError{StatusCode: 413, Message: "image too large"}}
	s, recent := newScan(t, g)
	path := writeImage(t, t.TempDir(), "page.png")

	s.Update(filepicker.FileSelectedMsg{Path: path})
	_, cmd := s.Update(key("enter"))
	uploaded, _ := tuitest.Find[uploadedMsg](tuitest.Collect(cmd))
	_, cmd = s.Update(uploaded)

	if cmd != nil {
		t.Error("expected no navigation after failure")
	}
	if !strings.Contains(s.View(), "Upload Failed: image too large") {
		t.Errorf("expected failure message\nView:\n%s", s.View())
	}
	if len(recent.List()) != 0 {
		t.Error("failed uploads must not be remembered")
	}
}

func TestScanChangeImage(t *testing.T) {
	s, _ := newScan(t, &tuitest.Gateway{})
	s.Update(filepicker.FileSelectedMsg{Path: "/tmp/a.jpg"})

	s.Update(key("c"))
	if s.state != statePicking {
		t.Error("expected picker after change")
	}
}

func TestScanCancelReturnsHome(t *testing.T) {
	s, _ := newScan(t, &tuitest.Gateway{})

	_, cmd := s.Update(filepicker.CancelledMsg{})
	r, ok := cmd().(nav.ReplaceMsg)
	if !ok || !r.Location.Equal(nav.HomeTab) {
		t.Errorf("expected replace with home, got %#v", cmd())
	}
}

func TestScanIgnoresForeignUpload(t *testing.T) {
	s, _ := newScan(t, &tuitest.Gateway{})
	other, _ := newScan(t, &tuitest.Gateway{})
	s.Update(filepicker.FileSelectedMsg{Path: "/tmp/a.jpg"})
	s.state = stateUploading

	_, cmd := s.Update(uploadedMsg{owner: other, sessionID: "x"})
	if cmd != nil || s.state != stateUploading {
		t.Error("result for another screen must be ignored")
	}
}
