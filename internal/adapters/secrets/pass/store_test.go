package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

type call struct {
	stdin string
	args  []string
}

func scripted(stdout, stderr string, err error) (*Store, *[]call) {
	var calls []call
	s := NewStore()
	s.run = func(_ context.Context, stdin string, args ...string) (string, string, error) {
		calls = append(calls, call{stdin: stdin, args: args})
		return stdout, stderr, err
	}
	return s, &calls
}

func TestKeyFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aiprobe/chatgpt/credential", KeyFor("chatgpt"))
}

func TestStoreCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		do        func(*Store) (string, error)
		stdout    string
		wantArgs  []string
		wantStdin string
		want      string
	}{
		{
			name: "put writes a multiline entry",
			do: func(s *Store) (string, error) {
				return "", s.Put(context.Background(), "aiprobe/chatgpt/credential", "sid=abc; cf=1\n")
			},
			wantArgs:  []string{"insert", "--multiline", "--force", "aiprobe/chatgpt/credential"},
			wantStdin: "sid=abc; cf=1\n",
		},
		{
			name: "get keeps inner newlines",
			do: func(s *Store) (string, error) {
				return s.Get(context.Background(), "aiprobe/kimi/credential")
			},
			stdout:   "{\n  \"access_token\": \"t\"\n}\n",
			wantArgs: []string{"show", "aiprobe/kimi/credential"},
			want:     "{\n  \"access_token\": \"t\"\n}",
		},
		{
			name: "delete forces removal",
			do: func(s *Store) (string, error) {
				return "", s.Delete(context.Background(), "aiprobe/doubao/credential")
			},
			wantArgs: []string{"rm", "--force", "aiprobe/doubao/credential"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, calls := scripted(tt.stdout, "", nil)
			got, err := tt.do(store)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.wantArgs, (*calls)[0].args)
			assert.Equal(t, tt.wantStdin, (*calls)[0].stdin)
		})
	}
}

func TestStorePutRejectsEmptyValue(t *testing.T) {
	t.Parallel()

	store, calls := scripted("", "", nil)
	require.ErrorContains(t, store.Put(context.Background(), "aiprobe/kimi/credential", "\n"), "empty value")
	assert.Empty(t, *calls)
}

func TestStoreGetMapsMissingEntry(t *testing.T) {
	t.Parallel()

	store, _ := scripted("", "Error: aiprobe/kimi/credential is not in the password store.", errors.New("exit status 1"))

	_, err := store.Get(context.Background(), "aiprobe/kimi/credential")
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreGetKeepsStderrInError(t *testing.T) {
	t.Parallel()

	store, _ := scripted("", "gpg: decryption failed: No secret key", errors.New("exit status 2"))

	_, err := store.Get(context.Background(), "aiprobe/chatgpt/credential")
	require.Error(t, err)
	assert.ErrorContains(t, err, `pass show "aiprobe/chatgpt/credential"`)
	assert.ErrorContains(t, err, "No secret key")
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store, calls := scripted("", "", nil)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Put(ctx, "k", "v"), context.Canceled)
	require.ErrorIs(t, store.Delete(ctx, "k"), context.Canceled)
	assert.Empty(t, *calls)
}

func TestWithStoreDir(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tmp/store", NewStore(WithStoreDir("/tmp/store")).storeDir)
}
