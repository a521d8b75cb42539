// Package doctor diagnoses whether prehook can run the configured checks.
//
// The doctor package detects:
//
//   - Configuration issues: checks whose options are malformed or that name
//     neither a built-in check nor a command.
//
//   - Missing tools: enabled checks whose requiredExecutable is not on PATH,
//     with the configured installCommand as fix.
//
//   - Git hooks: hook types with enabled checks but no prehook shim in the
//     repository's hooks directory.
//
// It also reports which config files were merged and which process invoked
// prehook, to help when a git GUI runs hooks with an unexpected environment.
//
// # Usage
//
//	report, err := doctor.Run(ctx, cfg, registry, repoRoot)
//	if err == nil && !report.Healthy() { ... }
//
// Issues in [CategoryConfig] and [CategoryTool] are blocking: hook runs
// report them as errors until fixed.
package doctor
