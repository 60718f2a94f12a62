package repository

import (
	"context"
	"testing"
	"time"

	"loanservicing/internal/pkg/consts"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisStoreAdapter(t *testing.T) {
	db, mock := redismock.NewClientMock()

	adapter := NewRedisStoreAdapter(db)

	assert.NotNil(t, adapter)
	assert.Equal(t, db, adapter.client)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAdapter_Set(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"
		value := "test-value"
		expiration := 5 * time.Minute

		mock.ExpectSet(key, value, expiration).SetVal("OK")

		err := adapter.Set(ctx, key, value, expiration)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"
		value := "test-value"
		expiration := 5 * time.Minute

		mock.ExpectSet(key, value, expiration).SetErr(redis.Nil)

		err := adapter.Set(ctx, key, value, expiration)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"
		expectedValue := []byte("test-value")

		mock.ExpectGet(key).SetVal(string(expectedValue))

		result, err := adapter.Get(ctx, key)

		assert.NoError(t, err)
		assert.Equal(t, expectedValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"

		mock.ExpectGet(key).SetErr(redis.Nil)

		result, err := adapter.Get(ctx, key)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"

		mock.ExpectDel(key).SetVal(1)

		err := adapter.Delete(ctx, key)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"

		mock.ExpectDel(key).SetErr(redis.Nil)

		err := adapter.Delete(ctx, key)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Exists(t *testing.T) {
	t.Run("Key exists", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"

		mock.ExpectExists(key).SetVal(1)

		exists, err := adapter.Exists(ctx, key)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Key does not exist", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)
		ctx := context.Background()
		key := "test-key"

		mock.ExpectExists(key).SetVal(0)

		exists, err := adapter.Exists(ctx, key)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_AcquireDispatchLock(t *testing.T) {
	installmentKey := "664f1c9e8b3e6a0001a1b2c3:2"
	ruleID := "664f1c9e8b3e6a0001d4e5f6"
	key := dispatchLockKey(installmentKey, ruleID)

	t.Run("Lock acquired", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX(key, "locked", consts.DispatchLockTTL).SetVal(true)

		acquired, err := adapter.AcquireDispatchLock(context.Background(), installmentKey, ruleID)

		assert.NoError(t, err)
		assert.True(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lock already held", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX(key, "locked", consts.DispatchLockTTL).SetVal(false)

		acquired, err := adapter.AcquireDispatchLock(context.Background(), installmentKey, ruleID)

		assert.NoError(t, err)
		assert.False(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX(key, "locked", consts.DispatchLockTTL).SetErr(redis.Nil)

		acquired, err := adapter.AcquireDispatchLock(context.Background(), installmentKey, ruleID)

		assert.Error(t, err)
		assert.False(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_ReleaseDispatchLock(t *testing.T) {
	installmentKey := "664f1c9e8b3e6a0001a1b2c3:2"
	ruleID := "664f1c9e8b3e6a0001d4e5f6"
	key := dispatchLockKey(installmentKey, ruleID)

	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectDel(key).SetVal(1)

		err := adapter.ReleaseDispatchLock(context.Background(), installmentKey, ruleID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectDel(key).SetErr(redis.Nil)

		err := adapter.ReleaseDispatchLock(context.Background(), installmentKey, ruleID)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
