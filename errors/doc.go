/*
Package errors provides the error taxonomy of the stress harness.

Each failure class has a sentinel and a typed error carrying context. The
typed errors match their sentinel through errors.Is and unwrap to the
underlying driver error:

	var (
	    ErrConfiguration    = errors.New("invalid configuration")
	    ErrStoreUnavailable = errors.New("store unavailable")
	    ErrWrite            = errors.New("write failed")
	    ErrRead             = errors.New("read failed")
	    ErrSessionsFailed   = errors.New("load sessions failed")
	)

Usage:

	report, err := coordinator.Load(ctx, params)
	if err != nil {
	    if errors.IsSessionsFailed(err) && errors.IsReadError(err) {
	        // at least one session could not scan or fetch
	    }
	    return err
	}

	err := errors.NewWriteError("DATACF", id, i, cause)
	err := errors.NewConfigurationError("numberOfRows", "must be >= 0")

No error in this package implies a retry: every failure is final for the
unit (row, session, run) that produced it.
*/
package errors
