package lamella

import (
	"fmt"
	"log/slog"

	"github.com/chazu/lamella/pkg/compile"
	"github.com/chazu/lamella/pkg/contour"
	"github.com/chazu/lamella/pkg/engine"
	"github.com/chazu/lamella/pkg/field"
	"github.com/chazu/lamella/pkg/field/sdfx"
	"github.com/chazu/lamella/pkg/scene"
	"github.com/chazu/lamella/pkg/slicer"
)

// Result carries everything one build produces: the evaluated scene, its
// compiled parts, and any findings along the way. Script and validation
// errors block slicing; warnings do not.
type Result struct {
	Scene    *scene.Scene
	Parts    []compile.Part
	Errors   []engine.EvalError
	Findings scene.ValidationResult
}

// OK reports whether the build produced usable parts.
func (r *Result) OK() bool {
	return len(r.Errors) == 0 && len(r.Findings.Errors) == 0
}

// Pipeline drives source → scene → parts → slices. One engine evaluates
// scripts, one geometry backend compiles them; both are reused across
// builds.
type Pipeline struct {
	engine  *engine.Engine
	backend field.Engine
	log     *slog.Logger
}

// NewPipeline creates a Pipeline on the sdfx backend, capturing the
// logger current at call time.
func NewPipeline() *Pipeline {
	return &Pipeline{
		engine:  engine.NewEngine(),
		backend: sdfx.New(),
		log:     Logger(),
	}
}

// Build evaluates source, validates the scene, and compiles its parts.
// Failures land in the Result rather than aborting: script errors carry
// line info, validation findings carry node IDs.
func (p *Pipeline) Build(source string) *Result {
	res := &Result{}

	// Stage 1: evaluate the script into a scene graph.
	sc, evalErrs, err := p.engine.Evaluate(source)
	if err != nil {
		p.log.Warn("evaluation failed", "err", err)
		res.Errors = append(res.Errors, engine.EvalError{Message: err.Error()})
		return res
	}
	if len(evalErrs) > 0 {
		res.Errors = evalErrs
		return res
	}
	res.Scene = sc

	// Stage 2: validate. Errors stop compilation; warnings ride along.
	res.Findings = scene.ValidateAll(sc)
	if len(res.Findings.Errors) > 0 {
		return res
	}

	// Stage 3: compile the DAG into per-part solids.
	parts, err := compile.Compile(sc, p.backend)
	if err != nil {
		p.log.Warn("compile failed", "err", err)
		res.Errors = append(res.Errors, engine.EvalError{Message: err.Error()})
		return res
	}
	res.Parts = parts
	return res
}

// Merged returns the union of every compiled part, or nil when the build
// produced none.
func (p *Pipeline) Merged(res *Result) field.Solid {
	return compile.Merge(p.backend, res.Parts)
}

// SliceScene merges all parts and cuts count layers through the full
// model height. The scene's default step sets the sampling pitch.
func (p *Pipeline) SliceScene(res *Result, count int) (*contour.PolySliceStack, error) {
	merged, sl, err := p.sliceSetup(res)
	if err != nil {
		return nil, err
	}
	bb := merged.BoundingBox()
	return sl.SliceRange(merged, bb.Min.Z, bb.Max.Z, count)
}

// SliceAt cuts a single plane through the merged scene at height z.
func (p *Pipeline) SliceAt(res *Result, z float64) (*contour.PolySlice, error) {
	merged, sl, err := p.sliceSetup(res)
	if err != nil {
		return nil, err
	}
	return sl.Slice(merged, z)
}

func (p *Pipeline) sliceSetup(res *Result) (field.Solid, *slicer.Slicer, error) {
	if !res.OK() {
		return nil, nil, fmt.Errorf("lamella: build has unresolved errors")
	}
	merged := compile.Merge(p.backend, res.Parts)
	if merged == nil {
		return nil, nil, fmt.Errorf("lamella: nothing to slice")
	}

	step := scene.DefaultStep
	if res.Scene != nil && res.Scene.Defaults.Step > 0 {
		step = res.Scene.Defaults.Step
	}
	sl, err := slicer.New(slicer.Options{Step: step, Logger: p.log})
	if err != nil {
		return nil, nil, err
	}
	return merged, sl, nil
}
