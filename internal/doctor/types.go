package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents checks whose configuration cannot be used.
	CategoryConfig IssueCategory = "config"
	// CategoryTool represents required executables missing from PATH.
	CategoryTool IssueCategory = "tool"
	// CategoryHook represents git hooks that will not invoke prehook.
	CategoryHook IssueCategory = "hook"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // hook type and check, e.g. "pre-commit/ShellCheck"
	Description string        // human-readable description
	Fix         string        // command that resolves the issue, may be empty
	Category    IssueCategory // issue category
	Blocking    bool          // true if hook runs will error until fixed
}

// IssueStats tracks counts by category.
type IssueStats struct {
	ChecksReady    int // enabled checks that can run
	ChecksDisabled int // configured but disabled checks
	ConfigIssues   int // checks with unusable configuration
	ToolsMissing   int // checks whose required executable is missing
	HooksInstalled int // hooks with a prehook shim
	HookIssues     int // hooks with enabled checks but no prehook shim
}

// Tool is a required executable found on PATH.
type Tool struct {
	Name    string
	Version string // first line of `<name> --version`; empty if unknown
}

// Report is the result of a diagnosis.
type Report struct {
	ConfigFiles []string // config files merged over the defaults
	ParentPID   string
	ParentCmd   string
	Tools       []Tool // required executables found on PATH, sorted by name
	Stats       IssueStats
	Issues      []Issue
}

// Healthy reports whether nothing blocks hook runs.
func (r *Report) Healthy() bool {
	for _, issue := range r.Issues {
		if issue.Blocking {
			return false
		}
	}
	return true
}
