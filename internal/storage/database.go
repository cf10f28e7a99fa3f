package storage

import (
	"errors"
	"hash/fnv"
	"math/bits"
	"sync"
	"time"
)

// Database is a concurrent key→Object store with lazy per-key expiration.
// Keys are spread over independently locked shards, so operations on
// distinct keys never block each other and same-key operations serialize on
// the owning shard. Absence is a normal result, never an error.
type Database struct {
	shards    []*shard
	shardMask uint32
}

// New creates a Database with the requested number of shards, which must be
// a power of two no greater than 64.
func New(requestedShards uint) (*Database, error) {
	if bits.OnesCount(requestedShards) != 1 {
		return nil, errors.New("requested shards must be a power of 2")
	}
	if requestedShards > 64 {
		return nil, errors.New("requested shards must be less or equal than 64")
	}

	d := &Database{
		shards:    make([]*shard, requestedShards),
		shardMask: uint32(requestedShards - 1),
	}
	for i := range d.shards {
		d.shards[i] = newShard()
	}
	return d, nil
}

func (d *Database) shardFor(key string) *shard {
	hash := fnv.New32a()
	hash.Write([]byte(key)) //nolint:errcheck
	return d.shards[hash.Sum32()&d.shardMask]
}

// Get returns an independent copy of the object stored at key. An expired
// key reads as absent and both its records are purged.
func (d *Database) Get(key string) (Object, bool) {
	return d.shardFor(key).get(key)
}

// GetWith applies a read-only projection to the stored object in place,
// avoiding the copy Get makes. f must not retain the object.
func (d *Database) GetWith(key string, f func(*Object)) bool {
	return d.shardFor(key).getWith(key, f)
}

// Set writes the object according to opts. It reports whether the write was
// performed (NX/XX may decline it).
func (d *Database) Set(key string, obj Object, opts SetOptions) bool {
	return d.shardFor(key).set(key, obj, opts)
}

// Delete removes the key. It reports whether the key existed.
func (d *Database) Delete(key string) bool {
	return d.shardFor(key).delete(key)
}

// Expiry returns the remaining lifetime and status as ExpiryStatus.
func (d *Database) Expiry(key string) (time.Duration, ExpiryStatus) {
	return d.shardFor(key).expiry(key)
}

// Persist removes the deadline of the key, making it eternal. It reports
// whether a deadline was removed.
func (d *Database) Persist(key string) bool {
	return d.shardFor(key).persist(key)
}

// DeleteExpired samples up to limit deadlines per shard and evicts the past
// ones, returning the average expired/checked ratio across shards.
func (d *Database) DeleteExpired(limit int) float64 {
	var wg sync.WaitGroup
	var mu sync.Mutex // protects totalRatio
	var totalRatio float64

	wg.Add(len(d.shards))
	for _, s := range d.shards {
		go func(s *shard) {
			defer wg.Done()
			ratio := s.deleteExpired(limit)

			mu.Lock()
			totalRatio += ratio
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	return totalRatio / float64(len(d.shards))
}

// Len returns the number of stored keys, counting entries whose deadline has
// passed but has not been observed yet.
func (d *Database) Len() int {
	total := 0
	for _, s := range d.shards {
		total += s.len()
	}
	return total
}
