package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// stubOpen replaces openDB with one returning sqlmock handles and counts
// how often it was called.
func stubOpen(t *testing.T) *int32 {
	t.Helper()
	var calls int32
	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		atomic.AddInt32(&calls, 1)
		db, _, err := sqlmock.New()
		return db, err
	}
	t.Cleanup(func() { openDB = prev })
	return &calls
}

func resetSingleton(t *testing.T) {
	t.Helper()
	singletonMu.Lock()
	singletonDB = nil
	singletonInFly = false
	singletonMu.Unlock()
	t.Cleanup(func() {
		singletonMu.Lock()
		singletonDB = nil
		singletonMu.Unlock()
	})
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestConnectAppliesPoolOptions(t *testing.T) {
	stubOpen(t)

	db, err := Connect(context.Background(), "postgres://example", Options{MaxOpenConns: 3, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("expected MaxOpenConnections=3, got %d", got)
	}
}

func TestConnectClosesOnPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	prev := openDB
	openDB = func(string, string) (*sql.DB, error) { return db, nil }
	defer func() { openDB = prev }()

	_, err = Connect(context.Background(), "postgres://example", DefaultMigrateOptions())
	if err == nil || !strings.Contains(err.Error(), "ping database") {
		t.Fatalf("expected ping error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSingletonOpensOnce(t *testing.T) {
	resetSingleton(t)
	calls := stubOpen(t)

	var wg sync.WaitGroup
	results := make([]*sql.DB, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := GetSingleton(context.Background(), "postgres://example", DefaultLambdaOptions())
			if err != nil {
				t.Errorf("GetSingleton: %v", err)
				return
			}
			results[i] = db
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(calls); n != 1 {
		t.Fatalf("expected one open, got %d", n)
	}
	for i, db := range results {
		if db != results[0] {
			t.Fatalf("result %d differs from first", i)
		}
	}
}

func TestGetSingletonRetriesAfterFailure(t *testing.T) {
	resetSingleton(t)
	var calls int32
	prev := openDB
	openDB = func(string, string) (*sql.DB, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("dial failed")
		}
		db, _, err := sqlmock.New()
		return db, err
	}
	defer func() { openDB = prev }()

	if _, err := GetSingleton(context.Background(), "postgres://example", DefaultLambdaOptions()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	db, err := GetSingleton(context.Background(), "postgres://example", DefaultLambdaOptions())
	if err != nil || db == nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")

	opts := OptionsFromEnv(DefaultServerOptions())

	want := DefaultServerOptions()
	want.MaxOpenConns = 7
	want.ConnMaxIdleTime = 45 * time.Second
	if opts != want {
		t.Fatalf("expected %+v, got %+v", want, opts)
	}
}

func TestOptionsFromEnvKeepsDefaultsOnInvalidValue(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	defaults := DefaultLambdaOptions()
	if opts := OptionsFromEnv(defaults); opts != defaults {
		t.Fatalf("expected defaults, got %+v", opts)
	}
}

func TestIsLambdaRuntime(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	if IsLambdaRuntime() {
		t.Fatalf("expected false without function name")
	}
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "formulator-api")
	if !IsLambdaRuntime() {
		t.Fatalf("expected true with function name")
	}
}

func TestRunMigrationsNilDatabaseIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
