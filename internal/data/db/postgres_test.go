package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

func TestNewPostgresServiceAppliesPoolSettings(t *testing.T) {
	svc, err := NewPostgresService(logger.Nop(), Config{
		Driver:          "sqlite",
		SQLitePath:      filepath.Join(t.TempDir(), "pool.db"),
		MaxOpenConns:    3,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewPostgresService: %v", err)
	}
	defer svc.Close()

	sqlDB, err := svc.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 3 {
		t.Fatalf("MaxOpenConnections = %d, want 3", got)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
}

func TestNewPostgresServiceLeavesPoolDefaultsWhenUnset(t *testing.T) {
	svc, err := NewPostgresService(logger.Nop(), Config{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "defaults.db"),
	})
	if err != nil {
		t.Fatalf("NewPostgresService: %v", err)
	}
	defer svc.Close()

	sqlDB, err := svc.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 0 {
		t.Fatalf("MaxOpenConnections = %d, want unlimited (0)", got)
	}
}
