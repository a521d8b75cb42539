// Package check defines the contract every prehook check implements.
//
// A [Check] runs once per hook invocation and returns either a [Result]
// (pass, warn or fail with a message) or an error. The two channels never
// mix: a violation the check found is a Result, a broken environment (a tool
// that cannot be launched, a process killed by a signal) is an error.
//
// Concrete checks embed [Base], which holds the check's effective options and
// provides [Base.SpawnOnApplicableFiles]: it filters the run's file set with
// the check's include/exclude globs and, if anything is left, runs the check's
// command over the files in parallel batches. With nothing left no process is
// spawned at all.
//
// Implementations are looked up by name in a [Registry]; names without an
// implementation but with a configured command run as a [Generic] check.
package check
