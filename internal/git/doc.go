// Package git computes the file sets prehook checks run against.
//
// All operations call the git CLI rather than using Go git libraries. This
// keeps behaviour identical to what the user's git reports, including
// their config and attributes.
//
// # File Sets
//
// Paths are repo-relative and in the order git prints them:
//
//   - [StagedFiles]: files staged for the next commit (pre-commit)
//   - [UnpushedFiles]: files touched by commits on no remote branch (pre-push)
//   - [ChangedFiles]: files changed between two revisions (post-checkout, post-merge)
//   - [CommitFiles]: files of one commit (post-commit)
//   - [TrackedFiles]: every tracked file (--all-files)
//
// Deleted files are never included; there is nothing left to check.
package git
