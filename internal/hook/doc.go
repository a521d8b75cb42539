// Package hook runs the checks configured for one git hook and aggregates
// their outcomes.
//
// # Flow
//
// The CLI resolves the repository, computes the file set with [Files] and
// calls [Run]. Run builds every check configured for the hook ([Entries]),
// drops disabled and deselected ones, probes each check's required
// executable and runs the rest concurrently. Each check gets its own
// context, bounded by its timeout option when set.
//
// # Outcomes
//
// Every configured check yields exactly one [Outcome], in configuration
// order. A check's content result (pass, warn, fail) and an infrastructure
// error are kept apart: an Outcome carries either a Result or an Err, and
// [Outcome.State] reports "error" for the latter. A failing check with
// onFail = "warn" is reported as warn.
//
// [Report.ExitCode] maps the run to the status git sees:
//
//	0  every check passed or warned
//	1  at least one check failed
//	2  at least one check could not run
//
// # Installing
//
// [Install] writes a small shell shim into the repository's hooks directory
// that forwards git's arguments to `prehook run <hook>`. Shims are marked so
// [Uninstall] never removes scripts it did not write.
package hook
