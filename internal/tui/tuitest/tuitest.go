// ABOUTME: Shared fakes for screen tests
// ABOUTME: In-memory study gateway, a sample study session, and a command runner

package tuitest

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
	"github.com/Zubimendi/neurostudy/cli/internal/study"
)

// Gateway is an in-memory study gateway
type Gateway struct {
	mu        sync.Mutex
	Sessions  map[string]*client.StudySession
	Recent    []client.SessionSummary
	Err       error
	Uploads   []string
	Processed []client.ProcessRequest
}

// NewService wraps g in a study service
func NewService(g *Gateway) *study.Service {
	return study.New(g)
}

// Upload records the filename and returns session "s1"
func (g *Gateway) Upload(ctx context.Context, filename string, image io.Reader) (*client.UploadResult, error) {
	if _, err := io.Copy(io.Discard, image); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.Uploads = append(g.Uploads, filename)
	return &client.UploadResult{SessionID: "s1", ImageURL: "https://cdn.example.com/u1/s1.jpg"}, nil
}

// Process records the request
func (g *Gateway) Process(ctx context.Context, in *client.ProcessRequest) (*client.ProcessResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.Processed = append(g.Processed, *in)
	return &client.ProcessResult{SessionID: in.SessionID, Status: "completed"}, nil
}

// StudySession returns the stored session
func (g *Gateway) StudySession(ctx context.Context, id string) (*client.StudySession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	s, ok := g.Sessions[id]
	if !ok {
		return nil, &client.RemoteError{StatusCode: 404, Message: "study session not found"}
	}
	return s, nil
}

// RecentSessions returns Recent
func (g *Gateway) RecentSessions(ctx context.Context) ([]client.SessionSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Recent, nil
}

// SampleSession returns a completed session with two flashcards and two questions
func SampleSession(id string) *client.StudySession {
	return &client.StudySession{
		ID:                    id,
		Title:                 "Photosynthesis",
		Topic:                 "Biology",
		Status:                "completed",
		CreatedAt:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ShortSummary:          "Plants turn light into chemical energy.",
		DetailedSummary:       "Chlorophyll absorbs light, splitting water and fixing carbon dioxide into glucose.",
		SimplifiedExplanation: "Plants eat sunlight to make sugar.",
		KeyConcepts:           []string{"Chlorophyll", "Glucose"},
		Flashcards: []client.Flashcard{
			{Front: "What pigment absorbs light?", Back: "Chlorophyll"},
			{Front: "What sugar is produced?", Back: "Glucose"},
		},
		QuizQuestions: []client.QuizQuestion{
			{
				Question:      "Where does photosynthesis happen?",
				Options:       map[string]string{"A": "Mitochondria", "B": "Chloroplast", "C": "Nucleus", "D": "Ribosome"},
				CorrectAnswer: "B",
				Explanation:   "Chloroplasts contain chlorophyll.",
			},
			{
				Question:      "Which gas is absorbed?",
				Options:       map[string]string{"A": "Oxygen", "B": "Nitrogen", "C": "Carbon dioxide", "D": "Helium"},
				CorrectAnswer: "C",
				Explanation:   "CO2 is fixed into sugar.",
			},
		},
	}
}

// Collect runs cmd and every command it batches, returning the messages in order.
// Commands that sleep, such as tea.Tick, block the caller.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, Collect(c)...)
	}
	return out
}

// Find returns the first message of type T in msgs
func Find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
