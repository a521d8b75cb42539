package hook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/prehook/internal/git"
	"github.com/raphi011/prehook/internal/process"
)

const zeroSHA = "0000000000000000000000000000000000000000"

func TestParsePushRefs(t *testing.T) {
	t.Parallel()

	input := "refs/heads/main 67890 refs/heads/main 12345\n\nrefs/heads/new abcde refs/heads/new " + zeroSHA + "\n"
	refs, err := ParsePushRefs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []PushRef{
		{LocalRef: "refs/heads/main", LocalSHA: "67890", RemoteRef: "refs/heads/main", RemoteSHA: "12345"},
		{LocalRef: "refs/heads/new", LocalSHA: "abcde", RemoteRef: "refs/heads/new", RemoteSHA: zeroSHA},
	}, refs)

	_, err = ParsePushRefs(strings.NewReader("refs/heads/main 67890\n"))
	assert.ErrorContains(t, err, "expected 4 fields")

	refs, err = ParsePushRefs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestPushFiles(t *testing.T) {
	t.Parallel()
	repo := setupRepo(t)
	ctx := context.Background()

	commit := func(name string) string {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(repo, name), []byte(name+"\n"), 0o644))
		require.NoError(t, git.RunGitCommand(ctx, repo, "add", name))
		require.NoError(t, git.RunGitCommand(ctx, repo, "commit", "-q", "-m", name))
		sha, err := process.ExecSyncResult(ctx, "git -C '"+repo+"' rev-parse HEAD")
		require.NoError(t, err)
		return sha
	}

	base := commit("base.txt") // also commits staged.txt
	commit("a.txt")
	head := commit("b.txt")

	t.Run("existing remote ref", func(t *testing.T) {
		t.Parallel()
		files, err := PushFiles(ctx, repo, []PushRef{{LocalRef: "refs/heads/main", LocalSHA: head, RemoteSHA: base}})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt"}, files)
	})

	t.Run("new remote ref without remotes sends everything", func(t *testing.T) {
		t.Parallel()
		files, err := PushFiles(ctx, repo, []PushRef{{LocalRef: "refs/heads/main", LocalSHA: head, RemoteSHA: zeroSHA}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"committed.txt", "staged.txt", "base.txt", "a.txt", "b.txt"}, files)
	})

	t.Run("deleted ref and duplicates", func(t *testing.T) {
		t.Parallel()
		files, err := PushFiles(ctx, repo, []PushRef{
			{LocalRef: "(delete)", LocalSHA: zeroSHA, RemoteSHA: base},
			{LocalRef: "refs/heads/main", LocalSHA: head, RemoteSHA: base},
			{LocalRef: "refs/heads/copy", LocalSHA: head, RemoteSHA: base},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt"}, files)
	})
}
