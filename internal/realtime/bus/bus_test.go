package bus

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/realtime"
)

func TestNewProgressBusWithoutAddrIsNoop(t *testing.T) {
	b, err := NewProgressBus(logger.Nop(), RedisConfig{})
	if err != nil {
		t.Fatalf("NewProgressBus: %v", err)
	}
	if _, ok := b.(noopBus); !ok {
		t.Fatalf("expected noop bus, got %T", b)
	}
	evt := realtime.ProgressEvent{Type: realtime.EventLessonCompleted, UserID: uuid.New(), OccurredAt: time.Now()}
	if err := b.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewRedisBusRequiresAddr(t *testing.T) {
	if _, err := NewRedisBus(logger.Nop(), RedisConfig{}); err == nil {
		t.Fatal("expected error without address")
	}
	if _, err := NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatal("expected error without logger")
	}
}
