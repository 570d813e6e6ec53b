// ABOUTME: Tests for the session store implementations
// ABOUTME: Covers round-trip, clear, partial records, and file permissions

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() User {
	return User{
		ID:        "u1",
		Email:     "a@b.com",
		FullName:  "Ada Lovelace",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestFileStore_LoadEmpty(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	s, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(t.TempDir())

	require.NoError(t, fs.Save(ctx, &Session{Token: "t1", User: testUser()}))

	s, err := fs.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, testUser(), s.User)
}

func TestFileStore_SurvivesNewInstance(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, NewFileStore(dir).Save(ctx, &Session{Token: "t1", User: testUser()}))

	s, err := NewFileStore(dir).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.User.ID)
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)
	require.NoError(t, fs.Save(context.Background(), &Session{Token: "t1", User: testUser()}))

	info, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore(t.TempDir())
	require.NoError(t, fs.Save(ctx, &Session{Token: "t1", User: testUser()}))

	require.NoError(t, fs.Clear(ctx))

	s, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	// clearing twice is fine
	assert.NoError(t, fs.Clear(ctx))
}

func TestFileStore_PartialRecordIsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"token only", `{"authToken":"t1"}`},
		{"user only", `{"user":{"id":"u1"}}`},
		{"invalid json", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tc.content), 0600))

			s, err := NewFileStore(dir).Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestFileStore_SaveRequiresToken(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	assert.Error(t, fs.Save(context.Background(), &Session{User: testUser()}))
	assert.Error(t, fs.Save(context.Background(), nil))
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)
	require.NoError(t, fs.Save(context.Background(), &Session{Token: "t1", User: testUser()}))
	require.NoError(t, fs.Save(context.Background(), &Session{Token: "t2", User: testUser()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, m.Save(ctx, &Session{Token: "t1", User: testUser()}))
	s, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", s.Token)

	require.NoError(t, m.Clear(ctx))
	s, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestTokenSource(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	ts := TokenSource{Store: m}

	tok, err := ts.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, m.Save(ctx, &Session{Token: "t1", User: testUser()}))
	tok, err = ts.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)
}
