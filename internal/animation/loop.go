package animation

import "time"

// DefaultInterval 每 30ms 换一帧
const DefaultInterval = 30 * time.Millisecond

// Loop 翻页动画的计时器：只管帧下标，不管图片
// 由事件循环驱动，不开协程
type Loop struct {
	interval time.Duration
	index    int
	count    int
	last     time.Time
	running  bool
}

func New(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{interval: interval}
}

func (l *Loop) Interval() time.Duration { return l.interval }

// SetCount 帧加载完成后调用，下标归零
func (l *Loop) SetCount(n int) {
	l.count = max(0, n)
	l.index = 0
}

func (l *Loop) Count() int { return l.count }
func (l *Loop) Index() int { return l.index }

func (l *Loop) Start(now time.Time) {
	l.running = true
	l.last = now
}

func (l *Loop) Stop() { l.running = false }

func (l *Loop) Running() bool { return l.running }

// Tick 前进一帧；没有帧或者已停止时什么都不做
func (l *Loop) Tick() (int, bool) {
	if !l.running || l.count == 0 {
		return l.index, false
	}
	l.index = (l.index + 1) % l.count
	return l.index, true
}

// Step 距离上一次 tick 超过 interval 就 tick 一次
// 落后了也只补一帧，不追帧
func (l *Loop) Step(now time.Time) (int, bool) {
	if !l.running || now.Sub(l.last) < l.interval {
		return l.index, false
	}
	l.last = now
	return l.Tick()
}
