package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/lamella/pkg/contour"
	"github.com/chazu/lamella/pkg/export"
)

// squareRing builds a slice with a clockwise outer square spanning
// (0,0)-(10,10) and a counter-clockwise square hole spanning (3,3)-(7,7).
func squareRing(t *testing.T, z float64) *contour.PolySlice {
	t.Helper()
	outer := contour.NewPolyContour([]v2.Vec{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
	})
	hole := contour.NewPolyContour([]v2.Vec{
		{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7},
	})
	if outer.Winding() != contour.WindingClockwise {
		t.Fatalf("outer ring winding = %v, want clockwise", outer.Winding())
	}
	if hole.Winding() != contour.WindingCounterClockwise {
		t.Fatalf("hole winding = %v, want counter-clockwise", hole.Winding())
	}
	slice := contour.NewPolySlice(z)
	slice.Append(outer)
	slice.Append(hole)
	return slice
}

func TestWriteSVGOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, squareRing(t, 0), export.SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("missing <svg> element")
	}
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("outline mode wrote %d paths, want one per contour (2)", got)
	}
	// Bounds 10x10 plus a 1 unit margin each side at scale 1.
	if !strings.Contains(out, `width="12"`) || !strings.Contains(out, `height="12"`) {
		t.Errorf("canvas should be 12x12, got: %s", firstLineWith(out, "<svg"))
	}
}

func TestWriteSVGSolid(t *testing.T) {
	var buf bytes.Buffer
	opts := export.SVGOptions{Solid: true}
	if err := export.WriteSVG(&buf, squareRing(t, 0), opts); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "<path"); got != 1 {
		t.Errorf("solid mode wrote %d paths, want a single fill path", got)
	}
	if !strings.Contains(out, "fill-rule:evenodd") {
		t.Error("solid fill should use the even-odd rule")
	}

	// Outer subpath comes before the hole subpath: (0,0) flips to
	// (1,11), the hole corner (3,3) to (4,8).
	outerAt := strings.Index(out, "M 1.0000 11.0000")
	holeAt := strings.Index(out, "M 4.0000 8.0000")
	if outerAt < 0 || holeAt < 0 {
		t.Fatalf("missing expected subpath starts in: %s", out)
	}
	if outerAt > holeAt {
		t.Error("outer boundary should be written before the hole")
	}
}

func TestWriteSVGFlipsY(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, squareRing(t, 0), export.SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	// World (0,0) is the bottom-left corner; on the canvas it lands one
	// margin in from the left and one margin up from the bottom edge.
	if !strings.Contains(buf.String(), "M 1.0000 11.0000") {
		t.Error("expected world (0,0) to map to canvas (1,11)")
	}
}

func TestWriteSVGEmptySlice(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, contour.NewPolySlice(0), export.SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("empty slice should still produce a document")
	}
	if strings.Contains(out, "<path") {
		t.Error("empty slice should contain no paths")
	}
}

func TestWriteSVGValidation(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, nil, export.SVGOptions{}); err == nil {
		t.Error("expected an error for a nil slice")
	}
	if err := export.WriteSVG(&buf, squareRing(t, 0), export.SVGOptions{Scale: -2}); err == nil {
		t.Error("expected an error for a negative scale")
	}
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.svg")
	if err := export.SaveSVG(path, squareRing(t, 0), export.SVGOptions{Solid: true}); err != nil {
		t.Fatalf("SaveSVG failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Error("output should start with an XML declaration")
	}
}

// firstLineWith returns the first line containing the substring, for
// compact failure messages.
func firstLineWith(s, sub string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, sub) {
			return line
		}
	}
	return ""
}
