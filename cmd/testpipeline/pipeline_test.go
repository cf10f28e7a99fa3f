package testpipeline

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverAddr = "127.0.0.1:6380"

// requireServer skips the suite when no server listens on serverAddr, so the
// package stays runnable in isolation.
func requireServer(t *testing.T) {
	conn, err := net.DialTimeout("tcp", serverAddr, 200*time.Millisecond)
	if err != nil {
		t.Skipf("no server on %s: %v", serverAddr, err)
	}
	conn.Close() //nolint:errcheck
}

func TestPipelining(t *testing.T) {
	requireServer(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: serverAddr,
	})
	defer rdb.Close()

	ctx := context.Background()

	count := 10_000
	pipe := rdb.Pipeline()

	for i := 0; i < count; i++ {
		key := fmt.Sprintf("pipe_key_%d", i)
		val := fmt.Sprintf("val_%d", i)
		// SET acknowledges with a boolean frame, so go through Do
		pipe.Do(ctx, "SET", key, val)
	}

	getResults := make([]*redis.StringCmd, count)
	for i := 0; i < count; i++ {
		key := fmt.Sprintf("pipe_key_%d", i)
		getResults[i] = pipe.Get(ctx, key)
	}

	start := time.Now()
	_, err := pipe.Exec(ctx)
	elapsed := time.Since(start)

	require.NoError(t, err, "Pipeline execution failed")
	fmt.Printf("Pipeline executed in %v\n", elapsed)

	for i := 0; i < count; i++ {
		expected := fmt.Sprintf("val_%d", i)
		val, err := getResults[i].Result()

		assert.NoError(t, err)
		assert.Equal(t, expected, val, "Key %d mismatch", i)
	}
}

func TestExpirationThroughClient(t *testing.T) {
	requireServer(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: serverAddr,
	})
	defer rdb.Close()

	ctx := context.Background()

	require.NoError(t, rdb.Do(ctx, "SET", "ttl_key", "v", "PX", "80").Err())

	ttl, err := rdb.PTTL(ctx, "ttl_key").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	time.Sleep(120 * time.Millisecond)

	err = rdb.Get(ctx, "ttl_key").Err()
	assert.ErrorIs(t, err, redis.Nil, "key should have expired")
}

func TestGetRangeThroughClient(t *testing.T) {
	requireServer(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: serverAddr,
	})
	defer rdb.Close()

	ctx := context.Background()

	require.NoError(t, rdb.Do(ctx, "SET", "range_key", "hello").Err())

	val, err := rdb.GetRange(ctx, "range_key", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
}
