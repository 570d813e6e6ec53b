// ABOUTME: Study service: upload, process, and fetch study sessions
// ABOUTME: Thin pass-through over the gateway with no retries or caching

package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
)

// DefaultDetailsLimit bounds concurrent fetches in SessionDetails
const DefaultDetailsLimit = 4

// Gateway is the part of the API client the study service needs
type Gateway interface {
	Upload(ctx context.Context, filename string, image io.Reader) (*client.UploadResult, error)
	Process(ctx context.Context, in *client.ProcessRequest) (*client.ProcessResult, error)
	StudySession(ctx context.Context, id string) (*client.StudySession, error)
	RecentSessions(ctx context.Context) ([]client.SessionSummary, error)
}

// Service fronts the study endpoints
type Service struct {
	api Gateway
}

// New creates a study service
func New(api Gateway) *Service {
	return &Service{api: api}
}

// UploadImage sends the image at path to the backend
func (s *Service) UploadImage(ctx context.Context, path string) (*client.UploadResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading image: %s is a directory", path)
	}
	if info.Size() > client.MaxUploadBytes {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", info.Size(), client.MaxUploadBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	defer f.Close()

	slog.Debug("Uploading image", "path", path, "size", info.Size())
	res, err := s.api.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	slog.Info("Image uploaded", "session_id", res.SessionID)
	return res, nil
}

// ProcessImage asks the backend to run the pipeline on an uploaded image
func (s *Service) ProcessImage(ctx context.Context, sessionID, imageURL string) (*client.ProcessResult, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	res, err := s.api.Process(ctx, &client.ProcessRequest{SessionID: sessionID, ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}
	slog.Info("Session processed", "session_id", res.SessionID, "status", res.Status)
	return res, nil
}

// Session fetches one study session
func (s *Service) Session(ctx context.Context, id string) (*client.StudySession, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}
	sess, err := s.api.StudySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching session %s: %w", id, err)
	}
	return sess, nil
}

// RecentSessions lists the user's recent sessions, newest first
func (s *Service) RecentSessions(ctx context.Context) ([]client.SessionSummary, error) {
	list, err := s.api.RecentSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching recent sessions: %w", err)
	}
	return list, nil
}

// SessionDetails fetches several sessions concurrently, at most limit at a time.
// Results keep the order of ids. The first error cancels the rest.
func (s *Service) SessionDetails(ctx context.Context, ids []string, limit int) ([]*client.StudySession, error) {
	if limit <= 0 {
		limit = DefaultDetailsLimit
	}

	out := make([]*client.StudySession, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, id := range ids {
		g.Go(func() error {
			sess, err := s.Session(gctx, id)
			if err != nil {
				return err
			}
			out[i] = sess
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
