package game

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/PeterRapcsak/bailando/config"
	"github.com/PeterRapcsak/bailando/internal/animation"
	"github.com/PeterRapcsak/bailando/internal/dialog"
	"github.com/PeterRapcsak/bailando/internal/entity"
	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/PeterRapcsak/bailando/internal/keys"
	"github.com/PeterRapcsak/bailando/internal/monitor"
	"github.com/PeterRapcsak/bailando/internal/overlay"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"
)

// 帧还没加载完时的窗口大小
const (
	DefaultWidth  = 450
	DefaultHeight = 300
)

// Options 创建 Manager 需要的启动参数
type Options struct {
	Title         string
	Interval      time.Duration
	ConfigureKey  string
	StartUnlocked bool
}

// Manager 实现 ebiten.Game，拥有程序的全部状态
// Update/Draw 都在同一个事件循环里执行，不需要加锁
type Manager struct {
	MyPet *entity.Pet

	log       *zerolog.Logger
	store     *config.Store
	window    *overlay.Window
	surface   *surface
	loop      *animation.Loop
	monitor   *monitor.Monitor
	dialog    *dialog.Dialog
	images    []*ebiten.Image
	ready     <-chan frames.Sequence
	hotkey    string
	configure string
	cancel    context.CancelFunc
	keyBuf    []ebiten.Key
}

// New 读取设置，摆好窗口；ready 送来帧之前动画什么都不做
func New(ctx context.Context, store *config.Store, ready <-chan frames.Sequence, opts Options, logger *zerolog.Logger) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	settings := store.Current()

	g := &Manager{
		MyPet: &entity.Pet{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Opacity: settings.Opacity,
		},
		log:     logger,
		store:   store,
		loop:    animation.New(opts.Interval),
		monitor: monitor.New(),
		ready:   ready,
		cancel:  cancel,
	}

	// 1. 快捷键：设置里的名字认不出来就用默认的
	g.hotkey = g.resolveHotkey(settings.Hotkey)
	g.configure = "Home"
	if name, ok := keys.Canonical(opts.ConfigureKey); ok {
		g.configure = name
	} else if opts.ConfigureKey != "" {
		logger.Warn().Str("key", opts.ConfigureKey).Msg("无法识别的设置键，使用 Home")
	}

	// 2. 锁定状态机
	initial := overlay.Locked
	if opts.StartUnlocked {
		initial = overlay.Unlocked
	}
	g.surface = &surface{title: opts.Title, log: logger}
	g.window = overlay.New(g.surface, store, settings.Position.Point(), initial)

	// 3. 后台监控，只在设置面板里显示
	g.monitor.Start(ctx, 2*time.Second)
	return g
}

func (g *Manager) resolveHotkey(name string) string {
	if canon, ok := keys.Canonical(name); ok {
		return canon
	}
	def := keys.Name(keys.Default)
	g.log.Warn().Str("hotkey", name).Str("fallback", def).Msg("无法识别的快捷键，使用默认值")
	return def
}

func (g *Manager) Update() error {
	// 0. 窗口刚创建出来时补一次任务栏状态
	g.surface.flush(!g.window.Locked())

	// 1. 关窗口：保存位置和透明度后退出
	if ebiten.IsWindowBeingClosed() {
		return g.shutdown()
	}

	// 2. 帧加载完成的通知
	if err := g.receiveFrames(); err != nil {
		return err
	}

	// 3. 键盘
	g.keyBuf = inpututil.AppendJustPressedKeys(g.keyBuf[:0])
	for _, k := range g.keyBuf {
		if quit := g.handleKey(keys.Name(k)); quit {
			return g.shutdown()
		}
	}

	// 4. 鼠标拖拽 / 面板滚轮
	if g.dialog != nil {
		if _, dy := ebiten.Wheel(); dy != 0 {
			g.dialog.Wheel(dy)
		}
		g.MyPet.Opacity = g.dialog.Opacity()
		stats := g.monitor.Stats()
		g.MyPet.CPUUsage, g.MyPet.MemUsage = stats.CPU, stats.Mem
	} else {
		g.handleMouse()
	}

	// 5. 动画
	g.loop.Step(time.Now())
	return nil
}

func (g *Manager) receiveFrames() error {
	if g.ready == nil {
		return nil
	}
	select {
	case seq, ok := <-g.ready:
		g.ready = nil
		if !ok || seq.Len() == 0 {
			return fmt.Errorf("load frames: %w", frames.ErrNoFrames)
		}
		g.setFrames(seq)
	default:
	}
	return nil
}

func (g *Manager) setFrames(seq frames.Sequence) {
	g.images = make([]*ebiten.Image, seq.Len())
	for i, img := range seq.Images {
		g.images[i] = ebiten.NewImageFromImage(img)
	}
	size := seq.Bounds()
	g.MyPet.Frames = seq.Names
	g.MyPet.Width, g.MyPet.Height = size.X, size.Y

	// 让窗口大小 = 帧大小
	ebiten.SetWindowSize(size.X, size.Y)
	g.loop.SetCount(len(g.images))
	g.loop.Start(time.Now())
	g.log.Info().Int("frames", seq.Len()).Int("width", size.X).Int("height", size.Y).Msg("帧已加载")
}

// handleKey 返回 true 表示要退出
func (g *Manager) handleKey(name string) bool {
	if g.dialog != nil {
		g.handleDialogKey(name)
		return false
	}
	switch overlay.Route(name, g.hotkey, g.configure) {
	case overlay.ActionToggle:
		state := g.window.Toggle()
		g.log.Info().Stringer("state", state).Msg("锁定状态切换")
	case overlay.ActionConfigure:
		// 面板打开后不处理鼠标，先把进行中的拖拽结束掉
		if err := g.window.Release(); err != nil {
			g.log.Err(err).Msg("保存位置失败")
		}
		g.dialog = dialog.Open(g.store.Current(), g.configure)
	default:
		// ESC 关闭程序
		return name == "Escape"
	}
	return false
}

func (g *Manager) handleDialogKey(name string) {
	switch g.dialog.Key(name) {
	case dialog.Confirmed:
		p := g.dialog.Patch()
		if p.Hotkey != nil {
			canon := g.resolveHotkey(*p.Hotkey)
			p.Hotkey = &canon
		}
		if err := g.store.Save(p); err != nil {
			g.log.Err(err).Msg("保存设置失败")
		}
		g.hotkey = g.resolveHotkey(g.store.Current().Hotkey)
		g.MyPet.Opacity = g.dialog.Opacity()
		g.dialog = nil
	case dialog.Cancelled:
		g.MyPet.Opacity = g.dialog.Opacity()
		g.dialog = nil
	case dialog.Reset:
		def, err := g.store.Reset()
		if err != nil {
			g.log.Err(err).Msg("恢复默认设置失败")
		}
		g.hotkey = g.resolveHotkey(def.Hotkey)
		g.MyPet.Opacity = def.Opacity
		g.window.MoveTo(def.Position.Point())
	}
}

func (g *Manager) handleMouse() {
	// 鼠标屏幕位置 = 窗口位置 + 鼠标相对窗口的位置
	wx, wy := ebiten.WindowPosition()
	cx, cy := ebiten.CursorPosition()
	g.window.Track(image.Pt(wx, wy))
	pointer := image.Pt(wx+cx, wy+cy)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.window.Press(pointer)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if err := g.window.Release(); err != nil {
			g.log.Err(err).Msg("保存位置失败")
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.window.Move(pointer)
	}
}

// shutdown 停掉定时器和后台协程，最后保存一次
func (g *Manager) shutdown() error {
	g.loop.Stop()
	g.cancel()

	pos := g.window.Origin()
	op := g.MyPet.Opacity
	if g.dialog != nil {
		op = g.store.Current().Opacity // 面板没确认，不保存预览值
	}
	err := g.store.Save(config.Patch{
		Position: &config.Point{X: pos.X, Y: pos.Y},
		Opacity:  &op,
	})
	if err != nil {
		g.log.Err(err).Msg("退出时保存设置失败")
	} else {
		g.log.Info().Int("x", pos.X).Int("y", pos.Y).Int("opacity", op).Msg("退出时已保存设置")
	}
	return ebiten.Termination
}

func (g *Manager) Draw(screen *ebiten.Image) {
	if len(g.images) > 0 {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(g.MyPet.Alpha())
		screen.DrawImage(g.images[g.loop.Index()], op)
	}
	if g.dialog != nil {
		g.drawDialog(screen)
	}
}

// panelLines 面板文字：设置项、当前帧、监控数据
func (g *Manager) panelLines() []string {
	lines := g.dialog.Lines()
	if n := len(g.MyPet.Frames); n > 0 {
		i := g.loop.Index()
		lines = append(lines, fmt.Sprintf("Frame %d/%d: %s", i+1, n, g.MyPet.Frames[i]))
	}
	return append(lines, fmt.Sprintf("CPU %.1f%%  MEM %.1f%%", g.MyPet.CPUUsage, g.MyPet.MemUsage))
}

func (g *Manager) drawDialog(screen *ebiten.Image) {
	lines := g.panelLines()

	// basicfont.Face7x13：每个字宽 7 像素，高 13 像素
	const lineH, pad = 16, 8
	w := float32(g.MyPet.Width)
	h := float32(len(lines)*lineH + 2*pad)
	vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, 200}, false)
	for i, line := range lines {
		// 文字是从基线开始画的，往下挪一点防止头被切掉
		text.Draw(screen, line, basicfont.Face7x13, pad, pad+11+i*lineH, color.RGBA{0, 255, 0, 255})
	}
}

func (g *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 画布大小就是帧大小
	return g.MyPet.Width, g.MyPet.Height
}
