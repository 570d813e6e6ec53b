// ABOUTME: Tests for the study service
// ABOUTME: Uses a fake gateway to check pass-through, file handling, and bounded fan-out

package study

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zubimendi/neurostudy/cli/internal/client"
)

type fakeGateway struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	inFlight atomic.Int32
	peak     atomic.Int32
	fail     map[string]error
	process  *client.ProcessRequest
}

func (f *fakeGateway) Upload(ctx context.Context, filename string, image io.Reader) (*client.UploadResult, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[filename] = data
	return &client.UploadResult{SessionID: "s1", ImageURL: "https://img/s1.jpg"}, nil
}

func (f *fakeGateway) Process(ctx context.Context, in *client.ProcessRequest) (*client.ProcessResult, error) {
	f.process = in
	return &client.ProcessResult{SessionID: in.SessionID, Status: "completed"}, nil
}

func (f *fakeGateway) StudySession(ctx context.Context, id string) (*client.StudySession, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if err := f.fail[id]; err != nil {
		return nil, err
	}
	return &client.StudySession{ID: id, Title: "Title " + id}, nil
}

func (f *fakeGateway) RecentSessions(ctx context.Context) ([]client.SessionSummary, error) {
	return []client.SessionSummary{{ID: "s2"}, {ID: "s1"}}, nil
}

func TestUploadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0600))

	gw := &fakeGateway{}
	res, err := New(gw).UploadImage(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, []byte("png-bytes"), gw.uploaded["page.png"])
}

func TestUploadImage_Missing(t *testing.T) {
	_, err := New(&fakeGateway{}).UploadImage(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUploadImage_Directory(t *testing.T) {
	_, err := New(&fakeGateway{}).UploadImage(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}

func TestProcessImage(t *testing.T) {
	gw := &fakeGateway{}
	res, err := New(gw).ProcessImage(context.Background(), "s1", "https://img/s1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	assert.Equal(t, "https://img/s1.jpg", gw.process.ImageURL)

	_, err = New(gw).ProcessImage(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestSession_WrapsError(t *testing.T) {
	remote := &client.RemoteError{StatusCode: 404, Message: "session not found"}
	gw := &fakeGateway{fail: map[string]error{"gone": remote}}

	_, err := New(gw).Session(context.Background(), "gone")
	var re *client.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 404, re.StatusCode)
}

func TestRecentSessions(t *testing.T) {
	list, err := New(&fakeGateway{}).RecentSessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].ID)
}

func TestSessionDetails_OrderAndLimit(t *testing.T) {
	gw := &fakeGateway{}
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}

	out, err := New(gw).SessionDetails(context.Background(), ids, 2)
	require.NoError(t, err)
	require.Len(t, out, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, out[i].ID)
	}
	assert.LessOrEqual(t, gw.peak.Load(), int32(2))
}

func TestSessionDetails_FirstErrorWins(t *testing.T) {
	gw := &fakeGateway{fail: map[string]error{"c": errors.New("boom")}}

	out, err := New(gw).SessionDetails(context.Background(), []string{"a", "b", "c"}, 0)
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "boom")
}
