package monitor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats 一次采样的结果
type Stats struct {
	CPU float64 // CPU 使用率 (0-100)
	Mem float64 // 内存 使用率 (0-100)
}

// Monitor 后台采集系统负载，只在设置面板里显示
type Monitor struct {
	mu    sync.RWMutex
	stats Stats
}

func New() *Monitor { return &Monitor{} }

// Start 启动采集协程，ctx 取消后退出
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			m.update()
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stats 提供给外部读取数据的方法
func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Monitor) update() {
	next := m.Stats()

	// 1. 内存
	if v, err := mem.VirtualMemory(); err == nil {
		next.Mem = v.UsedPercent
	}

	// 2. CPU：interval 为 0 时用上次调用到现在的间隔计算，不阻塞
	if c, err := cpu.Percent(0, false); err == nil && len(c) > 0 {
		next.CPU = c[0]
	}

	// 保留 1 位小数
	next.CPU = math.Round(next.CPU*10) / 10
	next.Mem = math.Round(next.Mem*10) / 10

	m.mu.Lock()
	m.stats = next
	m.mu.Unlock()
}
