package cli

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackbound/gitvault/internal/config"
	"github.com/stackbound/gitvault/internal/errors"
	"github.com/stackbound/gitvault/internal/exec"
)

const testRevision = "abcdef1234567890abcdef1234567890abcdef12"

// withMockCommander swaps the package-level commander for a mock and
// restores it when the test finishes.
func withMockCommander(t *testing.T) *exec.MockCommander {
	t.Helper()
	mock := exec.NewMockCommander()
	original := commander
	commander = mock
	t.Cleanup(func() { commander = original })
	return mock
}

func testConfig(outputDir string) *config.Config {
	return &config.Config{
		GitBinary:        "git",
		SevenZipBinary:   "7z",
		GPGBinary:        "gpg",
		OutputDir:        outputDir,
		CompressionLevel: 9,
	}
}

// newRepoDir creates a directory that passes the git metadata check.
func newRepoDir(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	requireNoError(t, os.Mkdir(path, 0o755))
	requireNoError(t, os.Mkdir(filepath.Join(path, ".git"), 0o755))
	return path
}

// prepareHappyPath configures the mock so staging, versioning, and
// compression all succeed.
func prepareHappyPath(t *testing.T, mock *exec.MockCommander) {
	t.Helper()
	mock.SetResponse("git", []string{"rev-parse", "HEAD"}, []byte(testRevision+"\n"), nil)
	mock.OnRun = func(call exec.CommandCall) ([]byte, error, bool) {
		if call.Command != "7z" {
			return nil, nil, false
		}
		requireNoError(t, os.WriteFile(call.Args[4], []byte("archive"), 0o644))
		return nil, nil, true
	}
}

func TestRun_ProjectNotFound(t *testing.T) {
	mock := withMockCommander(t)

	err := run(context.Background(), testConfig(t.TempDir()), options{
		projects: []string{filepath.Join(t.TempDir(), "nope")},
	})

	assert.True(t, stderrors.Is(err, errors.ErrProjectNotFound))
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_NotARepository(t *testing.T) {
	mock := withMockCommander(t)
	plain := t.TempDir()

	err := run(context.Background(), testConfig(t.TempDir()), options{
		projects: []string{plain},
	})

	assert.True(t, stderrors.Is(err, errors.ErrNotARepository))
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_ValidatesAllProjectsBeforeArchiving(t *testing.T) {
	mock := withMockCommander(t)
	good := newRepoDir(t, "good")
	bad := t.TempDir() // a directory, but no git metadata

	err := run(context.Background(), testConfig(t.TempDir()), options{
		projects: []string{good, bad},
	})

	// The valid first project must not have been staged.
	assert.True(t, stderrors.Is(err, errors.ErrNotARepository))
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_EncryptWithoutRecipients(t *testing.T) {
	mock := withMockCommander(t)
	repo := newRepoDir(t, "app")

	err := run(context.Background(), testConfig(t.TempDir()), options{
		projects: []string{repo},
		encrypt:  true,
	})

	assert.True(t, stderrors.Is(err, errors.ErrMissingRecipient))
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_ArchivesEveryProject(t *testing.T) {
	mock := withMockCommander(t)
	prepareHappyPath(t, mock)

	first := newRepoDir(t, "first")
	second := newRepoDir(t, "second")
	outputDir := t.TempDir()

	err := run(context.Background(), testConfig(outputDir), options{
		projects: []string{first, second},
	})
	requireNoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "first."+testRevision[:8]+".7z"))
	assert.FileExists(t, filepath.Join(outputDir, "second."+testRevision[:8]+".7z"))
	assert.Empty(t, mock.CallsTo("gpg"))

	// No staging directories left behind
	entries, readErr := os.ReadDir(outputDir)
	requireNoError(t, readErr)
	assert.Len(t, entries, 2)
}

func TestRun_EncryptRemovesOriginals(t *testing.T) {
	mock := withMockCommander(t)
	prepareHappyPath(t, mock)

	repo := newRepoDir(t, "app")
	outputDir := t.TempDir()

	err := run(context.Background(), testConfig(outputDir), options{
		projects:   []string{repo},
		encrypt:    true,
		recipients: []string{"alice", "bob"},
	})
	requireNoError(t, err)

	gpgCalls := mock.CallsTo("gpg")
	assert.Len(t, gpgCalls, 1)
	archivePath := filepath.Join(outputDir, "app."+testRevision[:8]+".7z")
	assert.Equal(t, []string{
		"--yes", "--trust-model", "always", "--encrypt-files",
		"--recipient", "alice", "--recipient", "bob",
		archivePath,
	}, gpgCalls[0].Args)

	_, statErr := os.Stat(archivePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_EncryptKeepArchiveRetainsOriginals(t *testing.T) {
	mock := withMockCommander(t)
	prepareHappyPath(t, mock)

	repo := newRepoDir(t, "app")
	outputDir := t.TempDir()

	err := run(context.Background(), testConfig(outputDir), options{
		projects:    []string{repo},
		encrypt:     true,
		recipients:  []string{"alice"},
		keepArchive: true,
	})
	requireNoError(t, err)

	assert.FileExists(t, filepath.Join(outputDir, "app."+testRevision[:8]+".7z"))
}

func TestRun_ConfigRecipientsApplyWhenFlagsOmitted(t *testing.T) {
	mock := withMockCommander(t)
	prepareHappyPath(t, mock)

	repo := newRepoDir(t, "app")
	cfg := testConfig(t.TempDir())
	cfg.Recipients = []string{"vault@example.com"}

	err := run(context.Background(), cfg, options{
		projects:   []string{repo},
		encrypt:    true,
		recipients: cfg.Recipients,
	})
	requireNoError(t, err)

	gpgCalls := mock.CallsTo("gpg")
	assert.Len(t, gpgCalls, 1)
	assert.Contains(t, gpgCalls[0].Args, "vault@example.com")
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
