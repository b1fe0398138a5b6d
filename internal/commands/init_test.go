package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "fjledger-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "fjledger")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/fjledger")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFJ(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runFJStdout returns only what the command wrote to stdout.
func runFJStdout(t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.Output()
	require.NoError(t, err, "fjledger %v", args)
	return string(out)
}

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFJ(t, "init", dir)
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initProject(t)

	expectedDirs := []string{
		"data",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err := os.Stat(filepath.Join(dir, "data", "fjledger.db"))
	assert.NoError(t, err, "database created")
}

func TestInit_UsesDirFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")
	out, err := runFJ(t, "-C", dir, "init")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, "fjledger.yaml"))
	require.NoError(t, err, "config should be written to the -C directory")
	_, err = os.Stat(filepath.Join(dir, "data", "fjledger.db"))
	require.NoError(t, err)

	out = runFJStdout(t, "-C", dir, "accounts", "list")
	assert.NotContains(t, out, "Error")
}

func TestInit_Config(t *testing.T) {
	dir := initProject(t)

	data, err := os.ReadFile(filepath.Join(dir, "fjledger.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "level: info")
	assert.Contains(t, contents, "legacy_account_name: Imported")
}

func TestInit_Gitignore(t *testing.T) {
	dir := initProject(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"data/", "logs/", ".env"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := initProject(t)

	_, err := runFJ(t, "init", dir)
	require.Error(t, err, "second init without --force should fail")

	out, err := runFJ(t, "init", dir, "--force")
	require.NoError(t, err, out)
}

func TestVersion(t *testing.T) {
	out, err := runFJ(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}
