package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantNil  bool
		wantType any
		wantErr  bool
	}{
		{name: "disabled by default", opts: Options{}, wantNil: true},
		{name: "explicitly disabled", opts: Options{Backend: "none"}, wantNil: true},
		{name: "memory", opts: Options{Backend: "Memory", TTL: time.Minute}, wantType: &Memory{}},
		{name: "redis", opts: Options{Backend: "redis", RedisAddr: "localhost:6379"}, wantType: &Redis{}},
		{name: "redis without address", opts: Options{Backend: "redis"}, wantErr: true},
		{name: "unknown backend", opts: Options{Backend: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, c)
				return
			}
			assert.IsType(t, tt.wantType, c)
			assert.NoError(t, c.Close())
		})
	}
}

func TestKey(t *testing.T) {
	type request struct {
		Price float64 `json:"price"`
		Rent  float64 `json:"rent"`
	}

	a, err := Key("project", request{Price: 400000, Rent: 1500})
	require.NoError(t, err)
	b, err := Key("project", request{Price: 400000, Rent: 1500})
	require.NoError(t, err)
	c, err := Key("project", request{Price: 400000, Rent: 1501})
	require.NoError(t, err)
	d, err := Key("compare", request{Price: 400000, Rent: 1500})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Regexp(t, `^project:[0-9a-f]{64}$`, a)

	_, err = Key("bad", func() {})
	assert.Error(t, err)
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0, 0)

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"ok":true}`)
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"ok":true}`, string(got), "stored value must not alias the caller's slice")
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute, 0)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v")))

	now = now.Add(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len(), "expired entries are dropped on read")
}

func TestMemoryEviction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Hour, 2)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "first", []byte("1")))
	now = now.Add(time.Minute)
	require.NoError(t, m.Set(ctx, "second", []byte("2")))
	now = now.Add(time.Minute)
	require.NoError(t, m.Set(ctx, "third", []byte("3")))

	assert.Equal(t, 2, m.Len())
	_, ok, _ := m.Get(ctx, "first")
	assert.False(t, ok, "entry closest to expiry is evicted")
	_, ok, _ = m.Get(ctx, "third")
	assert.True(t, ok)

	// Overwriting an existing key does not evict.
	require.NoError(t, m.Set(ctx, "third", []byte("3b")))
	assert.Equal(t, 2, m.Len())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 50)
	done := make(chan struct{})
	for i := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := range 100 {
				key := string(rune('a' + (i+j)%26))
				_ = m.Set(ctx, key, []byte{byte(j)})
				_, _, _ = m.Get(ctx, key)
			}
		}()
	}
	for range 8 {
		<-done
	}
	assert.LessOrEqual(t, m.Len(), 26)
}

func TestRedisUnreachable(t *testing.T) {
	// Nothing listens on port 1; operations must fail rather than report a miss.
	r := NewRedis("127.0.0.1:1", 0, "", time.Minute)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok, err := r.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, r.Set(ctx, "k", []byte("v")))
	assert.Error(t, r.Ping(ctx))
	assert.Equal(t, "rent-or-buy:", r.prefix)
}
