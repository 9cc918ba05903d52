// Command lamella evaluates a scene script, slices the solids it
// describes into planar contours, and either exports the slices or
// opens them in the interactive terminal viewer.
//
// Usage:
//
//	lamella [flags] scene.lisp
//
// With no export flags the sliced stack opens in the viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/lamella"
	"github.com/chazu/lamella/internal/tui"
	"github.com/chazu/lamella/pkg/contour"
	"github.com/chazu/lamella/pkg/export"
)

func main() {
	var (
		layers  = flag.Int("layers", 8, "number of slice planes across the scene height")
		svgPath = flag.String("svg", "", "write one SVG per slice, numbered from this path")
		pngPath = flag.String("png", "", "write one PNG per slice, numbered from this path")
		dxfPath = flag.String("dxf", "", "write every slice to one DXF, a layer per plane")
		solid   = flag.Bool("solid", false, "fill SVG regions instead of stroking outlines")
		verbose = flag.Bool("v", false, "log per-plane slicing diagnostics to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: lamella [flags] scene.lisp")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *verbose {
		lamella.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("lamella: %v", err)
	}

	p := lamella.NewPipeline()
	res := p.Build(string(source))

	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
	}
	for _, e := range res.Findings.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
	}
	for _, w := range res.Findings.Warnings {
		if w.NodeID.IsZero() {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", path, w.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: warning: node %s: %s\n", path, w.NodeID.Short(), w.Message)
		}
	}
	if !res.OK() {
		os.Exit(1)
	}

	stack, err := p.SliceScene(res, *layers)
	if err != nil {
		log.Fatalf("lamella: %v", err)
	}

	exported := false
	if *dxfPath != "" {
		if err := export.SaveDXF(*dxfPath, stack); err != nil {
			log.Fatalf("lamella: dxf: %v", err)
		}
		fmt.Printf("wrote %s (%d layers)\n", *dxfPath, stack.SliceCount())
		exported = true
	}
	if *svgPath != "" {
		for i, s := range stack.Slices() {
			out := numbered(*svgPath, i)
			if err := export.SaveSVG(out, s, export.SVGOptions{Solid: *solid}); err != nil {
				log.Fatalf("lamella: svg: %v", err)
			}
			fmt.Printf("wrote %s (z=%.3f)\n", out, s.Z())
		}
		exported = true
	}
	if *pngPath != "" {
		for i, s := range stack.Slices() {
			out := numbered(*pngPath, i)
			if err := export.SavePNG(out, s, export.PNGOptions{}); err != nil {
				log.Fatalf("lamella: png: %v", err)
			}
			fmt.Printf("wrote %s (z=%.3f)\n", out, s.Z())
		}
		exported = true
	}
	if exported {
		return
	}

	if err := tui.Run(stack, filepath.Base(path), contour.OuterClockwise); err != nil {
		log.Fatalf("lamella: %v", err)
	}
}

// numbered derives a per-slice filename: plate.svg becomes plate_000.svg.
func numbered(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), i, ext)
}
