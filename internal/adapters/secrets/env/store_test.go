package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

func TestStoreVarName(t *testing.T) {
	t.Parallel()

	store := NewStore("AIP")
	assert.Equal(t, "AIP_AIPROBE_CHATGPT_CREDENTIAL", store.VarName("aiprobe/chatgpt/credential"))
	assert.Equal(t, "AIP_SESSION_SECRET", store.VarName("session.secret"))
	assert.Equal(t, "PLAIN_KEY", NewStore("").VarName("plain-key"))
}

func TestStoreGetReadsEnvironment(t *testing.T) {
	t.Parallel()

	store := &Store{prefix: "AIP", lookup: func(name string) (string, bool) {
		if name == "AIP_AIPROBE_KIMI_CREDENTIAL" {
			return "token-1", true
		}
		return "", false
	}}

	value, err := store.Get(context.Background(), "aiprobe/kimi/credential")
	require.NoError(t, err)
	assert.Equal(t, "token-1", value)

	_, err = store.Get(context.Background(), "aiprobe/doubao/credential")
	assert.ErrorContains(t, err, "AIP_AIPROBE_DOUBAO_CREDENTIAL")
	assert.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreIsReadOnly(t *testing.T) {
	t.Parallel()

	store := NewStore("AIP")
	assert.ErrorIs(t, store.Put(context.Background(), "k", "v"), ErrReadOnly)
	assert.ErrorIs(t, store.Delete(context.Background(), "k"), ErrReadOnly)
}
