// Package lifecycle implements the repository-level operations a user
// runs directly: init, keygen, export-key, unlock, lock, and status. Each
// operation follows the same Options/Result shape — a context.Context, a
// small options struct, and a result struct describing what happened — so
// that cmd/ stays a thin translation from flags to a lifecycle call.
//
// Every operation that requires a clean working directory checks that
// first and fails with ErrWorkingDirectoryDirty before touching any
// on-disk state, and none attempts partial rollback on a later failure:
// unlock that fails on its third key leaves the first two installed, and
// the user is expected to rerun.
package lifecycle
