package storage

import (
	"sync"
	"time"
)

// shard holds one slice of the keyspace: the data map and an independent
// deadline map, both guarded by a single shard-local lock. Expiration is
// lazy: a read that finds a past deadline purges both entries.
type shard struct {
	data    map[string]Object
	expires map[string]time.Time
	mu      sync.RWMutex
}

func newShard() *shard {
	return &shard{
		data:    make(map[string]Object),
		expires: make(map[string]time.Time),
	}
}

// expired reports whether key has a deadline in the past. Callers hold at
// least the read lock.
func (s *shard) expired(key string, now time.Time) bool {
	deadline, ok := s.expires[key]
	return ok && now.After(deadline)
}

// purgeExpired re-checks the deadline under the write lock and evicts both
// records if it is still past. Check-and-evict is atomic per key because the
// whole shard is locked.
func (s *shard) purgeExpired(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.expired(key, time.Now()) {
		return false
	}
	delete(s.data, key)
	delete(s.expires, key)
	return true
}

// get returns an independent copy of the stored object.
func (s *shard) get(key string) (Object, bool) {
	s.mu.RLock()
	isExpired := s.expired(key, time.Now())
	obj, ok := s.data[key]
	s.mu.RUnlock()

	if isExpired {
		// deadline may have moved while upgrading the lock
		if s.purgeExpired(key) {
			return Object{}, false
		}
		return s.get(key)
	}
	if !ok {
		return Object{}, false
	}
	return obj.Clone(), true
}

// getWith applies a read-only projection in place, avoiding the copy that
// get makes. f runs under the shard read lock and must not retain the object.
func (s *shard) getWith(key string, f func(*Object)) bool {
	s.mu.RLock()
	isExpired := s.expired(key, time.Now())
	if !isExpired {
		obj, ok := s.data[key]
		if ok {
			f(&obj)
		}
		s.mu.RUnlock()
		return ok
	}
	s.mu.RUnlock()

	if s.purgeExpired(key) {
		return false
	}
	return s.getWith(key, f)
}

func (s *shard) set(key string, obj Object, opts SetOptions) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.data[key]
	if exists && s.expired(key, time.Now()) {
		// stale entry, treat the key as absent from here on
		delete(s.data, key)
		delete(s.expires, key)
		exists = false
	}

	if opts.NX && exists {
		return false
	}
	if opts.XX && !exists {
		return false
	}

	s.data[key] = obj

	switch {
	case opts.KeepTTL:
		// retain the existing deadline; a fresh key simply has none
		if !exists {
			delete(s.expires, key)
		}
	case opts.HasTTL:
		s.expires[key] = time.Now().Add(opts.TTL)
	default:
		delete(s.expires, key)
	}

	return true
}

func (s *shard) delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	delete(s.expires, key)
	return true
}

func (s *shard) expiry(key string) (time.Duration, ExpiryStatus) {
	s.mu.RLock()
	_, ok := s.data[key]
	deadline, hasExp := s.expires[key]
	s.mu.RUnlock()

	if !ok {
		return 0, ExpNotFound
	}
	if !hasExp {
		return 0, ExpNoTimeout
	}

	now := time.Now()
	if now.After(deadline) {
		if s.purgeExpired(key) {
			return 0, ExpNotFound
		}
		return s.expiry(key)
	}
	return deadline.Sub(now), ExpActive
}

func (s *shard) persist(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}
	if _, hasExp := s.expires[key]; !hasExp {
		return false
	}
	delete(s.expires, key)
	return true
}

// deleteExpired samples up to limit deadlines and evicts the past ones,
// returning the expired/checked ratio.
func (s *shard) deleteExpired(limit int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.expires) == 0 {
		return 0.0
	}

	checked := 0
	expired := 0
	now := time.Now()

	// go map iteration is randomized by design
	for key, deadline := range s.expires {
		checked++
		if now.After(deadline) {
			delete(s.data, key)
			delete(s.expires, key)
			expired++
		}
		if checked >= limit {
			break
		}
	}

	return float64(expired) / float64(checked)
}

func (s *shard) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
