package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/ports"
	portmocks "github.com/bnema/aiprobe-cli/internal/ports/mocks"
)

const key = "aiprobe/perplexity/credential"

func newChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	env := portmocks.NewMockSecretStore(t)
	pass := portmocks.NewMockSecretStore(t)
	store, err := NewStore(Backend{Name: "env", Store: env}, Backend{Name: "pass", Store: pass})
	require.NoError(t, err)

	return store, env, pass
}

func TestNewStoreRejectsEmptyOrNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	require.ErrorIs(t, err, errNoBackends)

	_, err = NewStore(Backend{Name: "env"})
	require.ErrorContains(t, err, "(env) is nil")
}

func TestStoreGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		envValue  string
		envErr    error
		passCall  bool
		passValue string
		passErr   error
		want      string
		wantErr   []string
		wantIs    error
	}{
		{name: "env wins", envValue: "from-env", want: "from-env"},
		{name: "falls through to pass", envErr: ports.ErrSecretNotFound, passCall: true, passValue: "from-pass", want: "from-pass"},
		{
			name:     "both fail",
			envErr:   ports.ErrSecretNotFound,
			passCall: true,
			passErr:  errors.New("entry not found"),
			wantErr:  []string{"env: secret not found", "pass: entry not found", key},
			wantIs:   ports.ErrSecretNotFound,
		},
		{name: "canceled stops the chain", envErr: context.Canceled, wantIs: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, env, pass := newChain(t)
			env.EXPECT().Get(mock.Anything, key).Return(tt.envValue, tt.envErr).Once()
			if tt.passCall {
				pass.EXPECT().Get(mock.Anything, key).Return(tt.passValue, tt.passErr).Once()
			}

			value, err := store.Get(context.Background(), key)
			if tt.wantErr == nil && tt.wantIs == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, value)
				return
			}
			require.Error(t, err)
			for _, msg := range tt.wantErr {
				assert.ErrorContains(t, err, msg)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestStorePutSkipsReadOnlyBackends(t *testing.T) {
	t.Parallel()

	store, env, pass := newChain(t)
	env.EXPECT().Put(mock.Anything, key, "secret").Return(ports.ErrSecretReadOnly).Once()
	pass.EXPECT().Put(mock.Anything, key, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "secret"))
}

func TestStorePutStopsAtFirstWritableBackend(t *testing.T) {
	t.Parallel()

	store, env, _ := newChain(t)
	env.EXPECT().Put(mock.Anything, key, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "secret"))
}

func TestStorePutReportsWhenNothingIsWritable(t *testing.T) {
	t.Parallel()

	store, env, pass := newChain(t)
	env.EXPECT().Put(mock.Anything, key, "secret").Return(ports.ErrSecretReadOnly).Once()
	pass.EXPECT().Put(mock.Anything, key, "secret").Return(ports.ErrSecretReadOnly).Once()

	err := store.Put(context.Background(), key, "secret")
	require.ErrorIs(t, err, ports.ErrSecretReadOnly)
}

func TestStorePutJoinsWriteFailures(t *testing.T) {
	t.Parallel()

	store, env, pass := newChain(t)
	env.EXPECT().Put(mock.Anything, key, "secret").Return(ports.ErrSecretReadOnly).Once()
	pass.EXPECT().Put(mock.Anything, key, "secret").Return(errors.New("gpg: no public key")).Once()

	err := store.Put(context.Background(), key, "secret")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass: gpg: no public key")
	assert.NotErrorIs(t, err, ports.ErrSecretReadOnly)
}

func TestStoreDeleteClearsEveryWritableBackend(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	secondary := portmocks.NewMockSecretStore(t)
	env := portmocks.NewMockSecretStore(t)
	store, err := NewStore(
		Backend{Name: "env", Store: env},
		Backend{Name: "primary", Store: primary},
		Backend{Name: "secondary", Store: secondary},
	)
	require.NoError(t, err)

	env.EXPECT().Delete(mock.Anything, key).Return(ports.ErrSecretReadOnly).Once()
	primary.EXPECT().Delete(mock.Anything, key).Return(nil).Once()
	secondary.EXPECT().Delete(mock.Anything, key).Return(errors.New("not in store")).Once()

	require.NoError(t, store.Delete(context.Background(), key))
}

func TestStoreDeleteFailsWhenNoBackendDeleted(t *testing.T) {
	t.Parallel()

	store, env, pass := newChain(t)
	env.EXPECT().Delete(mock.Anything, key).Return(ports.ErrSecretReadOnly).Once()
	pass.EXPECT().Delete(mock.Anything, key).Return(errors.New("exit status 1")).Once()

	err := store.Delete(context.Background(), key)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass: exit status 1")
}

func TestStoreDeleteStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, env, _ := newChain(t)
	env.EXPECT().Delete(mock.Anything, key).Return(context.Canceled).Once()

	require.ErrorIs(t, store.Delete(context.Background(), key), context.Canceled)
}
