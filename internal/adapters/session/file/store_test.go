package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, clock *mocks.ManualClock) (*Store, string) {
	t.Helper()

	root := t.TempDir()
	store, err := NewStore(root, "test-secret", WithClock(clock))
	require.NoError(t, err)
	return store, root
}

func TestStoreRejectsInvalidPlatformIDs(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, mocks.NewManualClock(time.Now()))
	testCases := []struct {
		name     string
		platform domain.PlatformID
		wantErr  string
	}{
		{name: "empty", platform: "", wantErr: "platform id is empty"},
		{name: "whitespace", platform: "   ", wantErr: "platform id is empty"},
		{name: "separator", platform: "a/b", wantErr: "invalid platform id"},
		{name: "traversal", platform: "..", wantErr: "invalid platform id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Save(context.Background(), tc.platform, domain.SessionState{})
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreSaveLoadRoundTripWithinFreshnessWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := mocks.NewManualClock(start)
	store, root := newTestStore(t, clock)

	state := domain.SessionState{
		Cookies: []domain.Cookie{{Name: "sid", Value: "abc"}},
		Origins: []domain.Origin{},
	}
	require.NoError(t, store.Save(context.Background(), "siteA", state))

	clock.Advance(24 * time.Hour)
	record, ok := store.Load(context.Background(), "siteA")
	require.True(t, ok)
	require.Len(t, record.Cookies, 1)
	assert.Equal(t, "sid", record.Cookies[0].Name)
	assert.Equal(t, "abc", record.Cookies[0].Value)
	assert.Empty(t, record.Origins)
	assert.True(t, record.CreatedAt.Equal(start))

	clock.Advance(7 * 24 * time.Hour)
	_, ok = store.Load(context.Background(), "siteA")
	assert.False(t, ok)

	info, err := os.Stat(filepath.Join(root, "siteA_session.enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(sessionFileMode), info.Mode().Perm())
}

func TestStoreFileUsesHexEnvelope(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t, mocks.NewManualClock(time.Now()))
	require.NoError(t, store.Save(context.Background(), "siteA", domain.SessionState{
		Cookies: []domain.Cookie{{Name: "sid", Value: "abc"}},
	}))

	data, err := os.ReadFile(filepath.Join(root, "siteA_session.enc"))
	require.NoError(t, err)

	ivHex, cipherHex, ok := strings.Cut(string(data), ":")
	require.True(t, ok)
	assert.Len(t, ivHex, 32)
	assert.NotEmpty(t, cipherHex)
	assert.NotContains(t, string(data), "abc")
}

func TestStoreLoadStaleBoundaryIsExclusive(t *testing.T) {
	t.Parallel()

	clock := mocks.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	store, _ := newTestStore(t, clock)
	require.NoError(t, store.Save(context.Background(), "siteA", domain.SessionState{}))

	clock.Advance(domain.SessionMaxAge)
	_, ok := store.Load(context.Background(), "siteA")
	assert.False(t, ok)
}

func TestStoreLoadTreatsCorruptionAsMiss(t *testing.T) {
	t.Parallel()

	store, root := newTestStore(t, mocks.NewManualClock(time.Now()))
	testCases := map[string]string{
		"no separator": "deadbeef",
		"bad hex":      "zz:zz",
		"short iv":     "00:00112233445566778899aabbccddeeff",
		"garbage":      strings.Repeat("0", 32) + ":" + strings.Repeat("a", 32),
	}

	for name, contents := range testCases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(root, "siteB_session.enc"), []byte(contents), 0o600))
			_, ok := store.Load(context.Background(), "siteB")
			assert.False(t, ok)
		})
	}
}

func TestStoreLoadWithDifferentSecretIsMiss(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	clock := mocks.NewManualClock(time.Now())
	writer, err := NewStore(root, "secret-one", WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, writer.Save(context.Background(), "siteA", domain.SessionState{Cookies: []domain.Cookie{{Name: "sid", Value: "abc"}}}))

	reader, err := NewStore(root, "secret-two", WithClock(clock))
	require.NoError(t, err)

	_, ok := reader.Load(context.Background(), "siteA")
	assert.False(t, ok)

	_, err = reader.Inspect(context.Background(), "siteA")
	assert.ErrorIs(t, err, domain.ErrSessionCorrupt)
}

func TestStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, mocks.NewManualClock(time.Now()))
	_, ok := store.Load(context.Background(), "nothing")
	assert.False(t, ok)

	_, err := store.Inspect(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, mocks.NewManualClock(time.Now()))
	require.NoError(t, store.Save(context.Background(), "siteA", domain.SessionState{}))
	require.NoError(t, store.Delete(context.Background(), "siteA"))
	require.NoError(t, store.Delete(context.Background(), "siteA"))
}
