package overlay

import (
	"image"
	"testing"
)

type fakeSurface struct {
	pos     image.Point
	taskbar bool
	moves   int
}

func (f *fakeSurface) MoveTo(p image.Point) { f.pos = p; f.moves++ }
func (f *fakeSurface) SetTaskbarVisible(v bool) { f.taskbar = v }

type fakeStore struct {
	saved []image.Point
}

func (f *fakeStore) SavePosition(p image.Point) error {
	f.saved = append(f.saved, p)
	return nil
}

func TestNew_AppliesInitialState(t *testing.T) {
	s := &fakeSurface{taskbar: true}
	w := New(s, &fakeStore{}, image.Pt(500, 500), Locked)
	if !w.Locked() || s.taskbar {
		t.Fatalf("locked window should hide taskbar entry: locked=%v taskbar=%v", w.Locked(), s.taskbar)
	}
	if s.pos != image.Pt(500, 500) {
		t.Fatalf("window not moved to initial origin: %v", s.pos)
	}
}

func TestToggle_TwiceRestoresConfiguration(t *testing.T) {
	for _, initial := range []State{Locked, Unlocked} {
		s := &fakeSurface{}
		w := New(s, &fakeStore{}, image.Pt(0, 0), initial)
		taskbar := s.taskbar
		w.Toggle()
		if w.State() == initial || s.taskbar == taskbar {
			t.Fatalf("first toggle from %v did not change configuration", initial)
		}
		w.Toggle()
		if w.State() != initial || s.taskbar != taskbar {
			t.Fatalf("double toggle from %v: state=%v taskbar=%v", initial, w.State(), s.taskbar)
		}
	}
}

func TestDrag_LockedDoesNothing(t *testing.T) {
	s := &fakeSurface{}
	st := &fakeStore{}
	w := New(s, st, image.Pt(100, 100), Locked)
	moves := s.moves

	if w.Press(image.Pt(110, 110)) {
		t.Fatal("press should be ignored while locked")
	}
	w.Move(image.Pt(300, 300))
	if err := w.Release(); err != nil {
		t.Fatal(err)
	}
	if w.Origin() != image.Pt(100, 100) || s.moves != moves {
		t.Fatalf("locked window moved to %v", w.Origin())
	}
	if len(st.saved) != 0 {
		t.Fatalf("nothing should be persisted, got %v", st.saved)
	}
}

func TestDrag_UnlockedMovesByPointerDeltaAndPersists(t *testing.T) {
	s := &fakeSurface{}
	st := &fakeStore{}
	w := New(s, st, image.Pt(100, 100), Unlocked)

	if !w.Press(image.Pt(130, 140)) {
		t.Fatal("press should start a drag while unlocked")
	}
	if w.Drag().Grab != image.Pt(30, 40) {
		t.Fatalf("grab offset %v", w.Drag().Grab)
	}
	w.Move(image.Pt(150, 145))
	w.Move(image.Pt(180, 200))
	if w.Origin() != image.Pt(150, 160) || s.pos != image.Pt(150, 160) {
		t.Fatalf("origin %v surface %v, want (150,160)", w.Origin(), s.pos)
	}
	if len(st.saved) != 0 {
		t.Fatal("position should only be persisted on release")
	}
	if err := w.Release(); err != nil {
		t.Fatal(err)
	}
	if len(st.saved) != 1 || st.saved[0] != image.Pt(150, 160) {
		t.Fatalf("persisted %v", st.saved)
	}
	if w.Dragging() {
		t.Fatal("release should end the drag session")
	}
}

func TestToggle_LockingEndsDrag(t *testing.T) {
	s := &fakeSurface{}
	st := &fakeStore{}
	w := New(s, st, image.Pt(0, 0), Unlocked)
	w.Press(image.Pt(5, 5))
	w.Toggle()
	if w.Dragging() {
		t.Fatal("locking should clear the drag session")
	}
	if w.Move(image.Pt(50, 50)) {
		t.Fatal("move after locking should be ignored")
	}
	if err := w.Release(); err != nil || len(st.saved) != 0 {
		t.Fatalf("release after locking persisted %v (%v)", st.saved, err)
	}
}

func TestMoveTo_DoesNotPersist(t *testing.T) {
	s := &fakeSurface{}
	st := &fakeStore{}
	w := New(s, st, image.Pt(0, 0), Locked)
	w.MoveTo(image.Pt(500, 500))
	if s.pos != image.Pt(500, 500) || len(st.saved) != 0 {
		t.Fatalf("pos=%v saved=%v", s.pos, st.saved)
	}
}

func TestRoute(t *testing.T) {
	cases := []struct {
		key, hotkey, configure string
		want                   Action
	}{
		{"End", "End", "Home", ActionToggle},
		{"END", "End", "Home", ActionToggle},
		{"Home", "End", "Home", ActionConfigure},
		{"Home", "Home", "Home", ActionToggle},
		{"A", "End", "Home", ActionNone},
		{"", "End", "Home", ActionNone},
	}
	for _, c := range cases {
		if got := Route(c.key, c.hotkey, c.configure); got != c.want {
			t.Errorf("Route(%q, %q, %q) = %v, want %v", c.key, c.hotkey, c.configure, got, c.want)
		}
	}
}

func TestTrack_FollowsRealWindowWhenIdle(t *testing.T) {
	s := &fakeSurface{}
	st := &fakeStore{}
	w := New(s, st, image.Pt(500, 500), Unlocked)

	// 窗口管理器把窗口挪到了 (480, 470)
	w.Track(image.Pt(480, 470))
	w.Press(image.Pt(490, 480))
	if g := w.Drag().Grab; g != image.Pt(10, 10) {
		t.Fatalf("grab should be relative to the real window, got %v", g)
	}
	w.Track(image.Pt(0, 0))
	if w.Origin() != image.Pt(480, 470) {
		t.Fatalf("tracking during a drag should be ignored, origin %v", w.Origin())
	}
	w.Move(image.Pt(500, 500))
	if err := w.Release(); err != nil {
		t.Fatal(err)
	}
	if len(st.saved) != 1 || st.saved[0] != image.Pt(490, 490) {
		t.Fatalf("saved %v", st.saved)
	}
}
