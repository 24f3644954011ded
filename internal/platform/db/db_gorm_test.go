package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	db, err := ConnectWithRetry(context.Background(), func() (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	db, err := ConnectWithRetry(context.Background(), func() (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_Timeout はタイムアウト後に最後のエラーが返されることを検証します。
func TestConnectWithRetry_Timeout(t *testing.T) {
	t.Parallel()

	errRefused := errors.New("connection refused")
	attempts := 0
	_, err := ConnectWithRetry(context.Background(), func() (*gorm.DB, error) {
		attempts++
		return nil, errRefused
	}, 50*time.Millisecond, 20*time.Millisecond)

	require.ErrorIs(t, err, errRefused)
	assert.GreaterOrEqual(t, attempts, 1)
}

func TestConnectWithRetry_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectWithRetry(ctx, func() (*gorm.DB, error) {
		return nil, errors.New("connection refused")
	}, time.Minute, time.Second)

	require.ErrorIs(t, err, context.Canceled)
}

func TestDialector(t *testing.T) {
	t.Parallel()

	d, err := Dialector(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(Config{Driver: "postgres", DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(Config{Driver: "mysql"})
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "candles.db")
	db, err := Open(context.Background(), Config{Driver: "sqlite", DSN: path, Migrate: true}, &widget{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&widget{}))
	require.NoError(t, db.Create(&widget{Name: "a"}).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestOpen_WithoutMigrate(t *testing.T) {
	t.Parallel()

	db, err := Open(context.Background(), Config{Driver: "sqlite", DSN: ":memory:"}, &widget{})
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable(&widget{}))
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ensureDir(":memory:"))
	assert.NoError(t, ensureDir("local.db"))
	assert.NoError(t, ensureDir("file:"+filepath.Join(t.TempDir(), "x", "y.db")+"?cache=shared"))
}
