package refresh

import "errors"

var (
	// ErrRefreshFailed wraps every terminal refresh outcome.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrNoRefreshToken means there was nothing to refresh with.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrCoordinatorReset is delivered to queued callers dropped by Reset.
	ErrCoordinatorReset = errors.New("refresh coordinator reset")
)
