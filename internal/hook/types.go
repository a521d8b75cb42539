package hook

import (
	"fmt"
	"slices"
)

// Supported git hooks.
const (
	PreCommit        = "pre-commit"
	PrepareCommitMsg = "prepare-commit-msg"
	CommitMsg        = "commit-msg"
	PostCommit       = "post-commit"
	PostCheckout     = "post-checkout"
	PostMerge        = "post-merge"
	PrePush          = "pre-push"
	PreRebase        = "pre-rebase"
)

// Types lists every supported hook.
var Types = []string{
	PreCommit,
	PrepareCommitMsg,
	CommitMsg,
	PostCommit,
	PostCheckout,
	PostMerge,
	PrePush,
	PreRebase,
}

// Validate returns an error if t is not a supported hook.
func Validate(t string) error {
	if !slices.Contains(Types, t) {
		return fmt.Errorf("unsupported hook type %q (supported: %v)", t, Types)
	}
	return nil
}
