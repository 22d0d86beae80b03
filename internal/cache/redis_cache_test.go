package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/models"
)

const defaultTTL = 10 * time.Minute

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return cache.NewRedisCache(client, defaultTTL), mock
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	key := cache.Key(cache.ProductKeyPrefix, "p-1")
	stored := models.DashboardStats{NetSales: 1500, PageViews: 7}
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		c, mock := setup(t)
		mock.ExpectGet(key).SetVal(string(data))

		var got models.DashboardStats
		found, err := c.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, stored, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		c, mock := setup(t)
		mock.ExpectGet(key).RedisNil()

		var got models.DashboardStats
		found, err := c.Get(ctx, key, &got)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error", func(t *testing.T) {
		c, mock := setup(t)
		redisErr := errors.New("connection refused")
		mock.ExpectGet(key).SetErr(redisErr)

		var got models.DashboardStats
		found, err := c.Get(ctx, key, &got)
		assert.False(t, found)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt payload", func(t *testing.T) {
		c, mock := setup(t)
		mock.ExpectGet(key).SetVal(`{"netSales":"lots"}`)

		var got models.DashboardStats
		found, err := c.Get(ctx, key, &got)
		assert.False(t, found)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	value := models.DashboardStats{TotalOrders: 3}
	data, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("explicit ttl", func(t *testing.T) {
		c, mock := setup(t)
		mock.ExpectSet(cache.StatsKey, data, time.Minute).SetVal("OK")

		require.NoError(t, c.Set(ctx, cache.StatsKey, value, time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default ttl", func(t *testing.T) {
		c, mock := setup(t)
		mock.ExpectSet(cache.StatsKey, data, defaultTTL).SetVal("OK")

		require.NoError(t, c.Set(ctx, cache.StatsKey, value, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unmarshallable", func(t *testing.T) {
		c, mock := setup(t)
		err := c.Set(ctx, cache.StatsKey, make(chan int), time.Minute)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	c, mock := setup(t)
	mock.ExpectDel("product:p-1", cache.StatsKey).SetVal(2)
	require.NoError(t, c.Delete(ctx, "product:p-1", cache.StatsKey))

	delErr := errors.New("readonly replica")
	mock.ExpectDel("product:p-2").SetErr(delErr)
	assert.ErrorIs(t, c.Delete(ctx, "product:p-2"), delErr)

	require.NoError(t, c.Delete(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopCache(t *testing.T) {
	c := cache.NewNoopCache()
	var v models.DashboardStats

	found, err := c.Get(context.Background(), "any", &v)
	assert.False(t, found)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(context.Background(), "any", v, time.Second))
	assert.NoError(t, c.Delete(context.Background(), "any"))
	assert.NoError(t, c.Close())
}
