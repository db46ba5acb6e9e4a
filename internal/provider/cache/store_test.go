package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, ttl time.Duration) (*FileStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)}
	s, err := NewFileStore(t.TempDir(), true, ttl, WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func TestFileStore_SetGet(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	payload := json.RawMessage(`{"solarPotential":{"panelCapacityWatts":400}}`)

	require.NoError(t, s.Set("insights:25.4687,-80.4776", payload))

	entry, err := s.Get("insights:25.4687,-80.4776")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(entry.Data))
	assert.Equal(t, "insights:25.4687,-80.4776", entry.Key)
}

func TestFileStore_Expiry(t *testing.T) {
	s, clock := newTestStore(t, time.Minute)
	require.NoError(t, s.Set("k", json.RawMessage(`1`)))

	clock.Advance(59 * time.Second)
	_, err := s.Get("k")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrExpired)

	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrNotFound, "expired entries are removed")
}

func TestFileStore_Errors(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get("")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, s.Set("", nil), ErrInvalidKey)
	assert.ErrorIs(t, s.Delete(""), ErrInvalidKey)
}

func TestFileStore_DeleteAndClear(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.Set("a", json.RawMessage(`1`)))
	require.NoError(t, s.Set("b", json.RawMessage(`2`)))

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"), "delete is idempotent")
	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Clear())
	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_ClearRemovesInterruptedWrites(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.Set("a", json.RawMessage(`1`)))

	leftover := s.path("b") + ".tmp"
	require.NoError(t, os.WriteFile(leftover, []byte(`{"partial`), 0o600))
	unrelated := filepath.Join(s.directory, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o600))

	require.NoError(t, s.Clear())

	assert.NoFileExists(t, leftover)
	assert.NoFileExists(t, s.path("a"))
	assert.FileExists(t, unrelated)
}

func TestFileStore_Disabled(t *testing.T) {
	s, err := NewFileStore("", false, 0)
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	_, err = s.Get("k")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, s.Set("k", nil), ErrDisabled)
	assert.ErrorIs(t, s.Delete("k"), ErrDisabled)
	assert.ErrorIs(t, s.Clear(), ErrDisabled)
}

func TestNewFileStore(t *testing.T) {
	_, err := NewFileStore("", true, time.Hour)
	assert.Error(t, err)

	s, err := NewFileStore(t.TempDir(), true, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, s.TTL())
}

func TestFileStore_CorruptEntry(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	require.NoError(t, os.WriteFile(s.path("bad"), []byte("{not json"), 0600))

	_, err := s.Get("bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
