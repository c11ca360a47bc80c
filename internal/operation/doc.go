// Package operation runs snapshot mutations in the background, one at a time.
//
// An Executor owns at most one outstanding Handle. Start launches a create or
// delete on its own goroutine and returns immediately; Poll is a non-blocking
// check that hands the Result back exactly once. The goroutine receives copies
// of every input it needs and reports only through the handle, so the caller's
// state is never shared with it.
//
// Outcomes fall into three classes:
//
//   - StatusOK: timeshift exited successfully.
//   - StatusDomainError: timeshift ran and reported failure. Result.Message
//     carries its diagnostic text.
//   - StatusCrashed: timeshift could not be started, died abnormally, or the
//     goroutine panicked. The caller keeps its prior state.
//
// Operations have no timeout and cannot be cancelled. A hung timeshift keeps
// the executor busy until it exits.
package operation
