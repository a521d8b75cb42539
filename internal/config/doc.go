// Package config resolves prehook configuration.
//
// Configuration is a tree of [Options] decoded from TOML. Layers, highest
// priority first:
//
//   - .prehook.toml at the repository root
//   - ~/.config/prehook/config.toml (PREHOOK_CONFIG overrides the path)
//   - built-in defaults (default.toml, embedded)
//
// Each layer is combined with [Merge]: tables merge key by key, scalars and
// lists from the higher layer replace the lower one.
//
// # Check Options
//
// Checks are configured in tables named after the hook type and the check:
//
//	[PreCommit.MochaOnly]
//	enabled = true
//	include = ["**/*.test.js"]
//	exclude = ["vendor/**"]
//	command = "grep"
//	onFail = "warn"
//	timeout = "30s"
//
// The special [PreCommit.ALL] table supplies options shared by every
// pre-commit check; [Config.CheckOptions] merges a check's table over it.
//
// Malformed values are reported as [*ConfigError] with the dotted key path.
package config
