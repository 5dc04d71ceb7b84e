package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runAIP(t, binaryPath, home, "platforms", "init")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "profiles.toml")

	stdout, stderr, err = runAIP(t, binaryPath, home, "platforms")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "perplexity")

	stdout, stderr, err = runAIP(t, binaryPath, home, "session", "status", "--platform", "kimi")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "missing")

	stdout, stderr, err = runAIP(t, binaryPath, home, "stats")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "No queries recorded yet.")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "aip-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/aip")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build aip binary: %s", string(output))
	return binaryPath
}

func runAIP(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "AIP_SESSION_SECRET=e2e-secret")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
