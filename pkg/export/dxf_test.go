package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/lamella/pkg/contour"
	"github.com/chazu/lamella/pkg/export"
)

func TestSaveDXF(t *testing.T) {
	stack := contour.NewPolySliceStack()
	stack.Append(squareRing(t, 0))
	stack.Append(squareRing(t, 2.5))

	path := filepath.Join(t.TempDir(), "slices.dxf")
	if err := export.SaveDXF(path, stack); err != nil {
		t.Fatalf("SaveDXF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)

	for _, layer := range []string{"SLICE_0", "SLICE_1"} {
		if !strings.Contains(out, layer) {
			t.Errorf("missing layer %s", layer)
		}
	}
	// Two contours on each of two slices.
	if got := strings.Count(out, "LWPOLYLINE"); got != 4 {
		t.Errorf("found %d LWPOLYLINE entities, want 4", got)
	}
}

func TestSaveDXFEmptyStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := export.SaveDXF(path, contour.NewPolySliceStack()); err != nil {
		t.Fatalf("SaveDXF failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestSaveDXFNilStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.dxf")
	if err := export.SaveDXF(path, nil); err == nil {
		t.Error("expected an error for a nil stack")
	}
}
