package hook

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/raphi011/prehook/internal/git"
)

// PushRef is one line git writes to the pre-push hook's stdin.
type PushRef struct {
	LocalRef  string
	LocalSHA  string
	RemoteRef string
	RemoteSHA string
}

// isZeroSHA reports whether sha is git's all-zero object name, used for
// refs that do not exist on one side of the push.
func isZeroSHA(sha string) bool {
	return sha != "" && strings.Trim(sha, "0") == ""
}

// ParsePushRefs parses "<local ref> <local sha> <remote ref> <remote sha>"
// lines. Blank lines are ignored.
func ParsePushRefs(r io.Reader) ([]PushRef, error) {
	var refs []PushRef
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("invalid pre-push input %q: expected 4 fields", line)
		}
		refs = append(refs, PushRef{
			LocalRef:  fields[0],
			LocalSHA:  fields[1],
			RemoteRef: fields[2],
			RemoteSHA: fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pre-push input: %w", err)
	}
	return refs, nil
}

// PushFiles returns the files changed by the commits a push sends, in
// first-seen order without duplicates. Deleted refs contribute nothing;
// new remote refs contribute every commit not yet on any remote.
func PushFiles(ctx context.Context, repoRoot string, refs []PushRef) ([]string, error) {
	var files []string
	for _, ref := range refs {
		if isZeroSHA(ref.LocalSHA) {
			continue
		}

		var changed []string
		var err error
		if isZeroSHA(ref.RemoteSHA) {
			changed, err = git.UnpushedFiles(ctx, repoRoot, ref.LocalSHA)
		} else {
			changed, err = git.ChangedFiles(ctx, repoRoot, ref.RemoteSHA, ref.LocalSHA)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref.LocalRef, err)
		}

		for _, f := range changed {
			if !slices.Contains(files, f) {
				files = append(files, f)
			}
		}
	}
	return files, nil
}
