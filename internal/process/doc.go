// Package process provides the OS process primitives checks are built on.
//
// Every primitive has a fixed, non-panicking failure convention:
//
//   - [ExecSync]: shell command, trimmed stdout and true on success,
//     ("", false) on any failure. The reason is discarded.
//   - [ExecSyncResult]: like ExecSync but returns the failure reason,
//     including stderr output, as an error.
//   - [Spawn]: asynchronous launch. The [Handle] exposes stdout/stderr streams,
//     a completion channel carrying the exit code and terminating signal, and a
//     separate channel that fires only if the executable could not be started.
//   - [SpawnSync]: blocking launch. Never returns an error; a launch failure is
//     reported in [Result].Err as a [*LaunchError] with a platform code such as
//     "ENOENT", and [Result].Status stays nil.
//   - [ParentPID], [ParentCommand]: best-effort process table lookups used in
//     diagnostics. Both return "" when the lookup is unsupported or fails.
//
// Command name, arguments and [Options] are passed to [os/exec] unmodified;
// only ExecSync and ExecSyncResult go through "sh -c".
package process
