// Package errors provides typed error values for the encryption filter.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key-file errors: parse/compatibility failures (ErrMalformedKeyFile, ErrIncompatibleKeyFile)
//   - Lifecycle errors: repository precondition failures (ErrWorkingDirectoryDirty, ErrAlreadyInitialized)
//   - Crypto errors: envelope failures (ErrKeyUnavailable, ErrCryptoLimitExceeded)
//   - Host-VCS/I-O errors: child process or filesystem failures (ErrHostVcsFailure, ErrIoFailure)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !dirty.Clean() {
//	    return nil, errors.ErrWorkingDirectoryDirty
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := lifecycle.Unlock(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyUnavailable) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("resolving key %q: %w", name, errors.ErrKeyUnavailable)
package errors
