package game

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/PeterRapcsak/bailando/config"
	"github.com/PeterRapcsak/bailando/internal/frames"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T, seed *config.Patch, ready <-chan frames.Sequence) (*Manager, *config.Store) {
	t.Helper()
	store := config.Open(filepath.Join(t.TempDir(), config.FileName), nil)
	store.Load()
	if seed != nil {
		if err := store.Save(*seed); err != nil {
			t.Fatal(err)
		}
	}
	nop := zerolog.Nop()
	g := New(context.Background(), store, ready, Options{Title: "test", Interval: 30 * time.Millisecond}, &nop)
	t.Cleanup(g.cancel)
	return g, store
}

// reload 从磁盘重新读一遍，确认真的写进去了
func reload(t *testing.T, store *config.Store) config.Settings {
	t.Helper()
	return config.Open(store.Path(), nil).Load()
}

func TestNew_UnknownHotkeyFallsBackToEnd(t *testing.T) {
	hk := "NotAKey"
	g, _ := newTestManager(t, &config.Patch{Hotkey: &hk}, nil)
	if g.hotkey != "End" {
		t.Fatalf("hotkey %q, want End", g.hotkey)
	}
}

func TestReceiveFrames_EmptyHandoffFails(t *testing.T) {
	ready := make(chan frames.Sequence, 1)
	g, _ := newTestManager(t, nil, ready)

	if err := g.receiveFrames(); err != nil {
		t.Fatalf("nothing delivered yet, got %v", err)
	}
	ready <- frames.Sequence{}
	if err := g.receiveFrames(); !errors.Is(err, frames.ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestReceiveFrames_ClosedChannelFails(t *testing.T) {
	ready := make(chan frames.Sequence)
	close(ready)
	g, _ := newTestManager(t, nil, ready)
	if err := g.receiveFrames(); !errors.Is(err, frames.ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestShutdown_SavesPositionAndOpacity(t *testing.T) {
	g, store := newTestManager(t, nil, nil)
	g.window.MoveTo(image.Pt(10, 20))
	g.MyPet.Opacity = 100

	if err := g.shutdown(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("shutdown should end the loop, got %v", err)
	}
	got := reload(t, store)
	if got.Position != (config.Point{X: 10, Y: 20}) || got.Opacity != 100 {
		t.Fatalf("saved %+v", got)
	}
}

func TestShutdown_OpenPanelKeepsStoredOpacity(t *testing.T) {
	op := 200
	g, store := newTestManager(t, &config.Patch{Opacity: &op}, nil)

	g.handleKey("Home")
	g.handleKey("ArrowDown")
	g.MyPet.Opacity = g.dialog.Opacity() // Update 每帧做的预览
	if g.MyPet.Opacity != 195 {
		t.Fatalf("preview %d", g.MyPet.Opacity)
	}
	g.shutdown()
	if got := reload(t, store).Opacity; got != 200 {
		t.Fatalf("unconfirmed preview was saved: %d", got)
	}
}

func TestPanelConfirm_StoresCanonicalHotkey(t *testing.T) {
	g, store := newTestManager(t, nil, nil)

	g.handleKey("Home")
	if g.dialog == nil {
		t.Fatal("configure key should open the panel")
	}
	g.handleKey("f4")
	g.handleKey("Enter")
	if g.dialog != nil {
		t.Fatal("enter should close the panel")
	}
	if g.hotkey != "F4" || reload(t, store).Hotkey != "F4" {
		t.Fatalf("hotkey %q, stored %q", g.hotkey, reload(t, store).Hotkey)
	}

	// 新快捷键生效，旧的不再切换
	g.handleKey("End")
	if !g.window.Locked() {
		t.Fatal("old hotkey still toggles")
	}
	g.handleKey("F4")
	if g.window.Locked() {
		t.Fatal("new hotkey should unlock")
	}
}

func TestPanelResetThenCancel_KeepsDefaults(t *testing.T) {
	op, hk := 120, "F2"
	g, store := newTestManager(t, &config.Patch{Opacity: &op, Hotkey: &hk}, nil)

	g.handleKey("Home")
	g.handleKey("Delete")
	g.handleKey("Escape")
	if g.dialog != nil {
		t.Fatal("escape should close the panel")
	}
	g.shutdown()

	got := reload(t, store)
	def := config.NewDefault()
	if got != def {
		t.Fatalf("reset was undone: %+v", got)
	}
	if g.hotkey != def.Hotkey {
		t.Fatalf("hotkey %q", g.hotkey)
	}
}

func TestOpenPanel_EndsDrag(t *testing.T) {
	g, store := newTestManager(t, nil, nil)
	g.handleKey("End") // 解锁

	g.window.Press(image.Pt(510, 510))
	g.window.Move(image.Pt(560, 530))
	g.handleKey("Home")
	if g.window.Dragging() {
		t.Fatal("drag should end when the panel opens")
	}
	if got := reload(t, store).Position; got != (config.Point{X: 550, Y: 520}) {
		t.Fatalf("drag position not saved: %+v", got)
	}
}

func TestEscapeQuitsOnlyWithoutPanel(t *testing.T) {
	g, _ := newTestManager(t, nil, nil)
	g.handleKey("Home")
	if g.handleKey("Escape") {
		t.Fatal("escape in the panel should only cancel")
	}
	if !g.handleKey("Escape") {
		t.Fatal("escape should quit")
	}
}

func TestPanelLines_ShowCurrentFrame(t *testing.T) {
	g, _ := newTestManager(t, nil, nil)
	g.MyPet.Frames = []string{"a.png", "b.png"}
	g.loop.SetCount(2)
	g.loop.Start(time.Now())
	g.loop.Tick()

	g.handleKey("Home")
	if lines := g.panelLines(); !slices.Contains(lines, "Frame 2/2: b.png") {
		t.Fatalf("lines %q", lines)
	}
}
