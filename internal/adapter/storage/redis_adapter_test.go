package storage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisSequence_Next(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	seq := NewRedisSequence(client)
	if err := seq.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	for want := 1; want <= 3; want++ {
		n, err := seq.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != want {
			t.Errorf("expected %d, got %d", want, n)
		}
	}
}

func TestRedisSequence_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	seq := NewRedisSequence(client)
	if err := seq.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	const callers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]bool)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[n] {
				t.Errorf("sequence %d handed out twice", n)
			}
			seen[n] = true
		}()
	}
	wg.Wait()

	if len(seen) != callers {
		t.Errorf("expected %d distinct numbers, got %d", callers, len(seen))
	}
}

func TestMemorySequence_Next(t *testing.T) {
	seq := NewMemorySequence()
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		n, err := seq.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != want {
			t.Errorf("expected %d, got %d", want, n)
		}
	}
}
