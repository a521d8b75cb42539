package git

import (
	"bytes"
	"context"
	"fmt"
	"slices"
)

// Only files that still exist after the operation are interesting to checks:
// added, copied, modified, renamed.
const diffFilter = "--diff-filter=ACMR"

// splitNUL splits -z output into paths, dropping empty entries.
func splitNUL(output []byte) []string {
	var paths []string
	for p := range bytes.SplitSeq(output, []byte{0}) {
		if len(p) > 0 {
			paths = append(paths, string(p))
		}
	}
	return paths
}

// StagedFiles returns the repo-relative paths staged for the next commit.
func StagedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	output, err := outputGit(ctx, repoRoot, "diff", "--cached", "--name-only", "-z", diffFilter)
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}
	return splitNUL(output), nil
}

// TrackedFiles returns every file tracked in the index.
func TrackedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	output, err := outputGit(ctx, repoRoot, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	return splitNUL(output), nil
}

// ChangedFiles returns the files changed between two revisions.
func ChangedFiles(ctx context.Context, repoRoot, from, to string) ([]string, error) {
	output, err := outputGit(ctx, repoRoot, "diff", "--name-only", "-z", diffFilter, from, to)
	if err != nil {
		return nil, fmt.Errorf("diff %s..%s: %w", from, to, err)
	}
	return splitNUL(output), nil
}

// UnpushedFiles returns the files changed by commits reachable from rev but
// from no remote-tracking branch, in first-seen order without duplicates.
func UnpushedFiles(ctx context.Context, repoRoot, rev string) ([]string, error) {
	output, err := outputGit(ctx, repoRoot, "log", "--name-only", "-z", "--format=", diffFilter, rev, "--not", "--remotes")
	if err != nil {
		return nil, fmt.Errorf("list unpushed files: %w", err)
	}

	var files []string
	for _, f := range splitNUL(bytes.ReplaceAll(output, []byte("\n"), []byte{0})) {
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	return files, nil
}

// CommitFiles returns the files a single commit touched. Root commits are
// compared against the empty tree.
func CommitFiles(ctx context.Context, repoRoot, rev string) ([]string, error) {
	output, err := outputGit(ctx, repoRoot, "diff-tree", "--no-commit-id", "--name-only", "-r", "-z", "--root", diffFilter, rev)
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", rev, err)
	}
	return splitNUL(output), nil
}
