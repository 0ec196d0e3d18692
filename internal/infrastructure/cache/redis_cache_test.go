package cache_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadodovale/estoque-api/internal/infrastructure/cache"
)

const testPrefix = "estoque:inventory:"

var errRedis = errors.New("redis caído")

// fakeRedis implementa solo GET, SET e INCR; cualquier otro comando entra en pánico
// por la interfaz embebida en nil.
type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet map[string]bool
	failSet bool
	failInc bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}, failGet: map[string]bool{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet[key] {
		return redis.NewStringResult("", errRedis)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return redis.NewStatusResult("", errRedis)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInc {
		return redis.NewIntResult(0, errRedis)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func newTestCache(t *testing.T) (*cache.RedisGroupCache, *fakeRedis) {
	t.Helper()
	rdb := newFakeRedis()
	return cache.NewRedisGroupCache(rdb, testPrefix, 30*time.Second), rdb
}

// ──────────────────────────────────────────────────────────────────────────────
// Claves
// ──────────────────────────────────────────────────────────────────────────────

func TestEntryKey_DependeDeGeneracionYClave(t *testing.T) {
	k := cache.EntryKey(testPrefix, 3, `groups:{"Search":""}`)
	assert.True(t, strings.HasPrefix(k, "estoque:inventory:3:"))
	assert.Len(t, strings.TrimPrefix(k, "estoque:inventory:3:"), 64)

	assert.Equal(t, k, cache.EntryKey(testPrefix, 3, `groups:{"Search":""}`))
	assert.NotEqual(t, k, cache.EntryKey(testPrefix, 4, `groups:{"Search":""}`), "Invalidate cambia la generación")
	assert.NotEqual(t, k, cache.EntryKey(testPrefix, 3, `stats:{"Search":""}`))
}

func TestGenerationKey(t *testing.T) {
	assert.Equal(t, "estoque:inventory:gen", cache.GenerationKey(testPrefix))
}

func TestNewRedisClient_URLInvalida(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), "http://no-es-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / Set / Invalidate
// ──────────────────────────────────────────────────────────────────────────────

func TestRedisGroupCache_MissYLecturaTrasSet(t *testing.T) {
	ctx := context.Background()
	c, rdb := newTestCache(t)

	raw, gen, ok, err := c.Get(ctx, "groups:a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
	assert.Equal(t, int64(0), gen, "sin contador la generación es 0")

	require.NoError(t, c.Set(ctx, "groups:a", gen, []byte(`{"qty":5}`)))
	assert.Equal(t, 30*time.Second, rdb.ttls[cache.EntryKey(testPrefix, 0, "groups:a")])

	raw, gen, ok, err = c.Get(ctx, "groups:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), gen)
	assert.JSONEq(t, `{"qty":5}`, string(raw))

	_, _, ok, err = c.Get(ctx, "groups:b")
	require.NoError(t, err)
	assert.False(t, ok, "otra clave lógica no comparte entrada")
}

func TestRedisGroupCache_InvalidateOcultaEntradas(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "groups:a", 0, []byte(`{"qty":5}`)))
	require.NoError(t, c.Invalidate(ctx))

	_, gen, ok, err := c.Get(ctx, "groups:a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestRedisGroupCache_EscrituraViejaNoSobreviveAlInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	// lector: miss en la generación 0 y cálculo con datos previos a la mutación
	_, readGen, ok, err := c.Get(ctx, "groups:a")
	require.NoError(t, err)
	require.False(t, ok)

	// una mutación confirma e invalida mientras el lector calcula
	require.NoError(t, c.Invalidate(ctx))

	require.NoError(t, c.Set(ctx, "groups:a", readGen, []byte(`{"qty":5}`)))

	_, gen, ok, err := c.Get(ctx, "groups:a")
	require.NoError(t, err)
	assert.False(t, ok, "el resultado previo a la mutación no debe servirse")
	assert.Equal(t, int64(1), gen)

	require.NoError(t, c.Set(ctx, "groups:a", gen, []byte(`{"qty":2}`)))
	raw, _, ok, err := c.Get(ctx, "groups:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"qty":2}`, string(raw))
}

func TestRedisGroupCache_Errores(t *testing.T) {
	ctx := context.Background()

	t.Run("falla al leer la generación", func(t *testing.T) {
		c, rdb := newTestCache(t)
		rdb.failGet[cache.GenerationKey(testPrefix)] = true

		_, _, ok, err := c.Get(ctx, "groups:a")
		require.Error(t, err)
		assert.ErrorIs(t, err, errRedis)
		assert.Contains(t, err.Error(), "redis generation")
		assert.False(t, ok)
	})

	t.Run("generación no numérica", func(t *testing.T) {
		c, rdb := newTestCache(t)
		rdb.data[cache.GenerationKey(testPrefix)] = "abc"

		_, _, _, err := c.Get(ctx, "groups:a")
		assert.Error(t, err)
	})

	t.Run("falla al leer la entrada", func(t *testing.T) {
		c, rdb := newTestCache(t)
		rdb.failGet[cache.EntryKey(testPrefix, 0, "groups:a")] = true

		_, gen, ok, err := c.Get(ctx, "groups:a")
		assert.ErrorIs(t, err, errRedis)
		assert.Contains(t, err.Error(), "redis get")
		assert.False(t, ok)
		assert.Equal(t, int64(0), gen)
	})

	t.Run("falla al escribir", func(t *testing.T) {
		c, rdb := newTestCache(t)
		rdb.failSet = true

		err := c.Set(ctx, "groups:a", 0, []byte("{}"))
		assert.ErrorIs(t, err, errRedis)
		assert.Contains(t, err.Error(), "redis set")
	})

	t.Run("falla al invalidar", func(t *testing.T) {
		c, rdb := newTestCache(t)
		rdb.failInc = true

		err := c.Invalidate(ctx)
		assert.ErrorIs(t, err, errRedis)
		assert.Contains(t, err.Error(), "redis incr")
	})
}
