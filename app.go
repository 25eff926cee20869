package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/chazu/floorplan/pkg/config"
	"github.com/chazu/floorplan/pkg/engine"
	"github.com/chazu/floorplan/pkg/kernel"
	"github.com/chazu/floorplan/pkg/kernel/poly"
	"github.com/chazu/floorplan/pkg/kernel/sdfx"
	"github.com/chazu/floorplan/pkg/plan"
	"github.com/chazu/floorplan/pkg/scene"
	"github.com/chazu/floorplan/pkg/tessellate"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx context.Context

	evalMu sync.Mutex // zygomys sandboxes are not created concurrently

	mu      sync.Mutex
	cfg     *config.Config
	engine  *engine.Engine
	builder *tessellate.Builder
	catalog *plan.Catalog // presets followed by user shapes
	scene   *scene.Scene
}

// ShapeInfo describes one selectable shape.
type ShapeInfo struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Enclosed bool   `json:"enclosed"`
	Preset   bool   `json:"preset"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
// Geometry is in local space; Matrix is the column-major model transform.
type MeshData struct {
	ID            string      `json:"id"`
	Kind          string      `json:"kind"`
	PartName      string      `json:"partName"`
	Vertices      []float32   `json:"vertices"`
	Normals       []float32   `json:"normals"`
	UVs           []float32   `json:"uvs"`
	Indices       []uint32    `json:"indices"`
	Matrix        [16]float32 `json:"matrix"`
	Material      string      `json:"material"`
	Color         string      `json:"color"`
	Texture       string      `json:"texture,omitempty"`
	Repeat        bool        `json:"repeat"`
	CastShadow    bool        `json:"castShadow"`
	ReceiveShadow bool        `json:"receiveShadow"`
}

// LightData is a JSON-serializable scene light.
type LightData struct {
	Kind       string     `json:"kind"`
	Color      string     `json:"color"`
	Intensity  float64    `json:"intensity"`
	Position   [3]float64 `json:"position"`
	CastShadow bool       `json:"castShadow"`
}

// FixtureData carries the static parts of the scene.
type FixtureData struct {
	GridSize      float64     `json:"gridSize"`
	GridDivisions int         `json:"gridDivisions"`
	Lights        []LightData `json:"lights"`
}

// SceneResult is what the frontend renders after a selection.
type SceneResult struct {
	Shape    string      `json:"shape"`
	Enclosed bool        `json:"enclosed"`
	Meshes   []MeshData  `json:"meshes"`
	Fixtures FixtureData `json:"fixtures"`
	Errors   []string    `json:"errors"`
	Warnings []string    `json:"warnings"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is returned from Evaluate. When the source defines shapes the
// first of them is selected and Scene holds its meshes.
type EvalResult struct {
	Shapes   []ShapeInfo     `json:"shapes"`
	Scene    SceneResult     `json:"scene"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App with the preset catalog and the kernel named in
// cfg. A nil cfg uses the defaults.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		cfg:     cfg,
		engine:  engine.NewEngine(),
		builder: tessellate.New(newKernel(cfg), cfg),
		catalog: plan.Presets(),
		scene:   scene.New(cfg, nil),
	}
}

func newKernel(cfg *config.Config) kernel.Kernel {
	if cfg.Geometry.Kernel == config.KernelSdfx {
		return sdfx.New(cfg.Geometry.MeshCells)
	}
	return poly.New()
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	res := a.SelectShape(plan.DefaultPreset)
	for _, e := range res.Errors {
		log.Printf("startup: %s", e)
	}
}

// Shapes lists the selectable shapes, presets first.
func (a *App) Shapes() []ShapeInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shapeInfos()
}

func (a *App) shapeInfos() []ShapeInfo {
	presets := plan.Presets()
	out := []ShapeInfo{}
	for _, s := range a.catalog.Shapes() {
		_, preset := presets.Lookup(s.Name)
		out = append(out, ShapeInfo{
			Name:     s.Name,
			Size:     s.Size,
			Enclosed: s.Enclosed(a.builder.Tolerance()),
			Preset:   preset,
		})
	}
	return out
}

// SelectShape rebuilds the scene for the named shape. On failure the
// previous scene is kept and returned along with the error.
func (a *App) SelectShape(name string) SceneResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectShape(name)
}

func (a *App) selectShape(name string) SceneResult {
	shape, ok := a.catalog.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %q", plan.ErrUnknownShape, name)
		log.Printf("SelectShape: %v", err)
		res := a.current()
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	sum, err := a.scene.Rebuild(a.builder, shape)
	if err != nil {
		log.Printf("SelectShape: %v", err)
		res := a.current()
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	if !sum.Floor {
		log.Printf("SelectShape: %q is not enclosed, walls only", name)
	}

	res := a.current()
	res.Enclosed = sum.Enclosed
	for _, w := range sum.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	return res
}

// Current returns the scene as it stands.
func (a *App) Current() SceneResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current()
}

func (a *App) current() SceneResult {
	res := SceneResult{
		Shape:    a.scene.Shape(),
		Enclosed: a.scene.Floor() != nil,
		Meshes:   []MeshData{},
		Fixtures: fixtureData(a.scene.Fixtures()),
		Errors:   []string{},
		Warnings: []string{},
	}
	for _, o := range a.scene.Objects() {
		res.Meshes = append(res.Meshes, meshData(o))
	}
	return res
}

// Evaluate takes shape-language source, adds the shapes it defines to the
// catalog and selects the first of them. Shapes from an earlier Evaluate
// call are replaced; presets cannot be redefined. If the shape on screen is
// no longer in the catalog, the default preset is shown instead.
// This is the binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Shapes:   []ShapeInfo{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Evaluation runs outside the scene lock; it is bounded by the engine
	// timeout.
	a.evalMu.Lock()
	cat, evalErrs, err := a.engine.Evaluate(source)
	a.evalMu.Unlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	result.Scene = a.current()

	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Shapes = a.shapeInfos()
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		result.Shapes = a.shapeInfos()
		return result
	}

	next := plan.Presets()
	if err := next.Merge(cat); err != nil {
		log.Printf("Evaluate: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Shapes = a.shapeInfos()
		return result
	}
	a.catalog = next
	result.Shapes = a.shapeInfos()

	for _, w := range engine.Check(cat) {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.String()})
	}

	if names := cat.Names(); len(names) > 0 {
		result.Scene = a.selectShape(names[0])
	} else if shown := a.scene.Shape(); shown != "" {
		if _, ok := a.catalog.Lookup(shown); !ok {
			log.Printf("Evaluate: %q was removed, showing %q", shown, plan.DefaultPreset)
			result.Scene = a.selectShape(plan.DefaultPreset)
		}
	}
	return result
}

func meshData(o *scene.Object) MeshData {
	md := MeshData{
		ID:            o.ID.String(),
		Kind:          o.Kind.String(),
		PartName:      o.Name,
		Material:      o.Material.Name,
		Color:         o.Material.Color,
		Texture:       o.Material.Texture,
		Repeat:        o.Material.Repeat,
		CastShadow:    o.CastShadow,
		ReceiveShadow: o.ReceiveShadow,
	}
	if o.Geometry != nil {
		md.Vertices = o.Geometry.Vertices
		md.Normals = o.Geometry.Normals
		md.UVs = o.Geometry.UVs
		md.Indices = o.Geometry.Indices
	}
	for i, v := range o.Model() {
		md.Matrix[i] = float32(v)
	}
	return md
}

func fixtureData(f scene.Fixtures) FixtureData {
	fd := FixtureData{
		GridSize:      f.Grid.Size,
		GridDivisions: f.Grid.Divisions,
		Lights:        []LightData{},
	}
	for _, l := range f.Lights {
		fd.Lights = append(fd.Lights, LightData{
			Kind:       l.Kind.String(),
			Color:      l.Color,
			Intensity:  l.Intensity,
			Position:   l.Position,
			CastShadow: l.CastShadow,
		})
	}
	return fd
}
