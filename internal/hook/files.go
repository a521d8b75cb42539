package hook

import (
	"context"

	"github.com/raphi011/prehook/internal/git"
)

// Files returns the file set checks of hookType run against.
// args are the arguments git passed to the hook; all selects every tracked
// file regardless of the hook.
func Files(ctx context.Context, repoRoot, hookType string, args []string, all bool) ([]string, error) {
	if all {
		return git.TrackedFiles(ctx, repoRoot)
	}

	switch hookType {
	case PreCommit, PrepareCommitMsg, CommitMsg:
		return git.StagedFiles(ctx, repoRoot)
	case PostCommit:
		return git.CommitFiles(ctx, repoRoot, "HEAD")
	case PostCheckout:
		// <prev-head> <new-head> <branch-flag>
		if len(args) < 2 || args[0] == args[1] {
			return nil, nil
		}
		return git.ChangedFiles(ctx, repoRoot, args[0], args[1])
	case PostMerge:
		return git.ChangedFiles(ctx, repoRoot, "ORIG_HEAD", "HEAD")
	case PrePush:
		return git.UnpushedFiles(ctx, repoRoot, "HEAD")
	case PreRebase:
		// <upstream> [<branch>]
		if len(args) == 0 {
			return nil, nil
		}
		to := "HEAD"
		if len(args) > 1 {
			to = args[1]
		}
		return git.ChangedFiles(ctx, repoRoot, args[0], to)
	}
	return nil, Validate(hookType)
}
