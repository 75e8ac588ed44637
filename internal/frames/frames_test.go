package frames

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func names(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestList_LexicalOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"2.png", "10.png", "1.PNG", "notes.txt"} {
		writePNG(t, filepath.Join(dir, n), 2, 2)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := List(dir, Lexical)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1.PNG", "10.png", "2.png"}
	if got := names(paths); !slices.Equal(got, want) {
		t.Fatalf("lexical order: want %v, got %v", want, got)
	}
}

func TestList_NumericOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"frame10.png", "frame2.png", "frame1.png"} {
		writePNG(t, filepath.Join(dir, n), 2, 2)
	}
	paths, err := List(dir, Numeric)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"frame1.png", "frame2.png", "frame10.png"}
	if got := names(paths); !slices.Equal(got, want) {
		t.Fatalf("numeric order: want %v, got %v", want, got)
	}
}

func TestList_EmptyDirectory(t *testing.T) {
	_, err := List(t.TempDir(), Lexical)
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), Lexical)
	if err == nil || errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected a read error, got %v", err)
	}
}

func TestLoadAll_SkipsBrokenFrames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 3)
	if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "c.png"), 5, 2)

	paths, err := List(dir, Lexical)
	if err != nil {
		t.Fatal(err)
	}
	seq := LoadAll(paths, nil)
	if seq.Len() != 2 || !slices.Equal(seq.Names, []string{"a.png", "c.png"}) {
		t.Fatalf("unexpected sequence %v", seq.Names)
	}
	if got := seq.Bounds(); got != image.Pt(5, 3) {
		t.Fatalf("bounds: got %v", got)
	}
}

func TestLoad_FailsLoudly(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAsync_HandsBackOnce(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 1, 1)
	paths, err := List(dir, Lexical)
	if err != nil {
		t.Fatal(err)
	}

	ready := LoadAsync(context.Background(), paths, nil)
	select {
	case seq, ok := <-ready:
		if !ok || seq.Len() != 1 {
			t.Fatalf("unexpected handoff: %v %d", ok, seq.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for frames")
	}
	if _, ok := <-ready; ok {
		t.Fatal("channel should be closed after the single handoff")
	}
}

func TestNaturalCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2.png", "10.png", -1},
		{"10.png", "2.png", 1},
		{"a1", "a1", 0},
		{"a01", "a1", -1},
		{"b1", "a2", 1},
		{"img", "img1", -1},
		{"frame_9.png", "frame_10.png", -1},
	}
	for _, c := range cases {
		if got := naturalCompare(c.a, c.b); got != c.want {
			t.Errorf("naturalCompare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	if o, err := ParseOrder("NUMERIC"); err != nil || o != Numeric {
		t.Fatalf("got %v, %v", o, err)
	}
	if _, err := ParseOrder("random"); err == nil {
		t.Fatal("expected error")
	}
}
