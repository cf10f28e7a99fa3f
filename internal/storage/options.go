package storage

import "time"

type ExpiryStatus int

const (
	// ExpNotFound means that the key does not exist
	ExpNotFound ExpiryStatus = -2
	// ExpNoTimeout means that the key exists, but it does not have a TTL
	ExpNoTimeout ExpiryStatus = -1
	// ExpActive means that the key has an active lifetime
	ExpActive ExpiryStatus = 1
)

// SetOptions controls a single Set call. A plain Set (zero options) always
// overwrites the value and clears any previous deadline; keeping a previous
// TTL must be requested explicitly via KeepTTL.
type SetOptions struct {
	TTL     time.Duration // key lifetime, meaningful only when HasTTL
	HasTTL  bool          // TTL was supplied; TTL of 0 means already expired
	KeepTTL bool          // retain the existing deadline (ignore TTL field)
	NX      bool          // only set if the key does not exist
	XX      bool          // only set if the key already exists
}
