package prefabs

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/easekit/curve"
	"github.com/milk9111/easekit/modal"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff8000", color.RGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"10203040", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{" #000000 ", color.RGBA{A: 0xff}, false},
		{"#fff", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

type decodeTarget struct {
	Color  color.RGBA   `mapstructure:"color"`
	Curve  *curve.Curve `mapstructure:"curve"`
	Amount float64      `mapstructure:"amount"`
}

func TestDecodeComponent(t *testing.T) {
	got, err := DecodeComponent[decodeTarget](map[string]any{
		"color":  "#ff000080",
		"curve":  "linear",
		"amount": "0.5",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Color != (color.RGBA{R: 0xff, A: 0x80}) {
		t.Fatalf("color = %v", got.Color)
	}
	if got.Curve == nil || math.Abs(got.Curve.Evaluate(0.5)-0.5) > 1e-9 {
		t.Fatalf("curve = %v", got.Curve)
	}
	if got.Amount != 0.5 {
		t.Fatalf("amount = %v", got.Amount)
	}

	if _, err := DecodeComponent[decodeTarget](map[string]any{"colour": "#ffffff"}); err == nil {
		t.Fatal("unknown key accepted")
	}
	if _, err := DecodeComponent[decodeTarget](map[string]any{"curve": "wobbly"}); err == nil {
		t.Fatal("unknown curve preset accepted")
	}
	if got, err := DecodeComponent[decodeTarget](nil); err != nil || got.Curve != nil {
		t.Fatalf("nil input = %v %v", got, err)
	}
}

func TestEmbeddedSpecsLoad(t *testing.T) {
	m, err := LoadModalSpec()
	if err != nil {
		t.Fatal(err)
	}
	if m.OpenStyle != modal.SlideUp || m.CloseStyle != modal.SlideDown || m.Panel.Name == "" {
		t.Fatalf("modal spec = %+v", m)
	}
	if _, err := LoadLoadingScreenSpec(); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCameraSpec(); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStageSpec(); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadCurveLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Lookup("smooth"); err != nil {
		t.Fatalf("preset fallback: %v", err)
	}
	if len(Names()) == 0 {
		t.Fatal("no embedded prefabs listed")
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, "curves.yaml"), []byte("curves:\n  only: linear\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := LoadCurveLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if len(lib.Curves) != 1 || lib.Curves["only"] == nil {
		t.Fatalf("override not used: %v", lib.Curves)
	}
	if _, ok := ModTime("prefabs/curves.yaml"); !ok {
		t.Fatal("ModTime did not find the override")
	}
	if _, ok := ModTime("camera.yaml"); ok {
		t.Fatal("ModTime reported a file that is only embedded")
	}
}

func TestKind(t *testing.T) {
	tests := map[string]string{
		"prefabs/modal.yaml":          "spec",
		"x/CAMERA.YML":                "spec",
		"prefabs/scripts/intro.tengo": "script",
		"notes.txt":                   "",
	}
	for path, want := range tests {
		if got := Kind(path); got != want {
			t.Errorf("Kind(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "modal.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for a changed prefab")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	for got := range w.Events {
		if Kind(got) == "" {
			t.Fatalf("irrelevant path delivered: %q", got)
		}
	}
}
