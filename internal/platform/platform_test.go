package platform

import (
	"context"
	"testing"
	"time"
)

func TestKeepOnTop_DisabledAndCancelled(t *testing.T) {
	// interval 为 0 时不启动轮询
	KeepOnTop(context.Background(), "no such window", 0)

	ctx, cancel := context.WithCancel(context.Background())
	KeepOnTop(ctx, "no such window", 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	cancel()
}
