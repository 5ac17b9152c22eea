// Package refresh coordinates access-token recovery for the API client.
//
// # Overview
//
// When a request fails with 401 and has not been retried yet, the client
// hands it to Coordinator.Recover. The coordinator is a two-state machine:
//
//	NORMAL      no refresh outstanding
//	REFRESHING  exactly one refresh call in flight
//
// The first caller in NORMAL becomes the leader: it flips the state to
// REFRESHING, reads the stored refresh token and performs the one refresh
// call. Callers arriving while REFRESHING are appended to a FIFO queue and
// wait for the outcome instead of refreshing themselves.
//
// On success the new access token is stored, the leader retries its own
// request, and the queued requests are replayed with the new token in
// arrival order. On failure every queued caller receives the refresh error,
// both tokens are cleared, and the Redirector is told to send the user back
// to sign-in. In both cases the queue is emptied and the state returns to
// NORMAL.
//
// Concurrency & Contexts
//
// The state flag and queue live behind one mutex; the check-and-set of the
// flag happens under it. Each queued entry is settled exactly once. The
// refresh call itself is detached from the leader's cancellation and bounded
// by its own timeout so that one impatient caller cannot fail everyone
// else's session.
package refresh
