package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/molding/internal/config"
	"github.com/chazu/molding/pkg/design"
	"github.com/chazu/molding/pkg/engine"
	"github.com/chazu/molding/pkg/kernel"
	"github.com/chazu/molding/pkg/kernel/sdfx"
	"github.com/chazu/molding/pkg/kernel/weld"
	"github.com/chazu/molding/pkg/molding"
	"github.com/chazu/molding/pkg/tessellate"
	"go.uber.org/zap"
)

// colorPalette is a default palette used to assign distinct colors to moldings.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates molding scripts into meshes for a viewer or the CLI.
type App struct {
	engine  *engine.Engine
	builder kernel.Builder
	log     *zap.Logger
}

// MeshData is the JSON-serializable mesh format sent to a viewer.
type MeshData struct {
	Vertices    []float32 `json:"vertices"`
	Normals     []float32 `json:"normals"`
	UVs         []float32 `json:"uvs"`
	Indices     []uint32  `json:"indices"`
	MaterialIDs []int     `json:"materialIds"`
	PartName    string    `json:"partName"`
	Color       string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Node    string `json:"node,omitempty"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// OK reports whether the evaluation produced no errors.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0
}

// NewApp creates an App with default settings.
func NewApp() *App {
	return NewAppWithConfig(config.Default(), zap.NewNop())
}

// NewAppWithConfig creates an App whose engine and builder follow cfg.
func NewAppWithConfig(cfg *config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	opts := append(cfg.EngineOptions(), engine.WithLogger(log.Named("engine")))
	return &App{
		engine:  engine.NewEngine(opts...),
		builder: weld.New(cfg.Output.WeldEpsilon),
		log:     log,
	}
}

// Evaluate takes script source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	meshes, _, result := a.evaluate(source)
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:    m.Vertices,
			Normals:     m.Normals,
			UVs:         m.UVs,
			Indices:     m.Indices,
			MaterialIDs: m.MaterialIDs,
			PartName:    m.PartName,
			Color:       colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// evaluate runs script -> design -> validation -> meshes. Meshes are nil
// whenever result carries errors.
func (a *App) evaluate(source string) ([]*kernel.Mesh, *design.Design, EvalResult) {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate fatal error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil, nil, result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, nil, result
	}

	checkErrs, warns := engine.Check(d)
	for _, w := range warns {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line: w.Line, Col: w.Col, Message: w.Message, Node: nodeLabel(d, w.NodeID),
		})
	}
	if len(checkErrs) > 0 {
		for _, e := range checkErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return nil, d, result
	}

	meshes, err := tessellate.Tessellate(d, a.builder, molding.WithLogger(a.log.Named("molding")))
	if err != nil {
		a.log.Error("tessellate error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return nil, d, result
	}
	return meshes, d, result
}

func nodeLabel(d *design.Design, id design.NodeID) string {
	if id.IsZero() {
		return ""
	}
	if n := d.Get(id); n != nil && n.Name != "" {
		return n.Name
	}
	return id.Short()
}

// Build evaluates source and writes one STL file per molding into dir.
// It returns the written paths.
func (a *App) Build(source, dir string) ([]string, EvalResult, error) {
	meshes, _, result := a.evaluate(source)
	if !result.OK() {
		return nil, result, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, result, fmt.Errorf("build: %w", err)
	}
	var written []string
	for _, m := range meshes {
		p := filepath.Join(dir, fileName(m.PartName)+".stl")
		if err := sdfx.SaveSTL(p, m); err != nil {
			return written, result, fmt.Errorf("build: %w", err)
		}
		a.log.Info("wrote mesh",
			zap.String("molding", m.PartName),
			zap.String("path", p),
			zap.Int("triangles", m.TriangleCount()),
		)
		written = append(written, p)
	}
	return written, result, nil
}

// fileName maps a molding name to a safe file stem.
func fileName(name string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if stem == "" {
		return "molding"
	}
	return stem
}

// MoldingInfo summarizes one generated molding.
type MoldingInfo struct {
	Name      string          `json:"name"`
	Source    string          `json:"source"`
	Parts     int             `json:"parts"`
	Sections  int             `json:"sections"`
	Closed    bool            `json:"closed"`
	Vertices  int             `json:"vertices"`
	Faces     int             `json:"faces"`
	Triangles int             `json:"triangles"`
	Min       [3]float64      `json:"min"`
	Max       [3]float64      `json:"max"`
	Anchors   molding.Anchors `json:"anchors"`
}

// Info evaluates source and reports per-molding statistics.
func (a *App) Info(source string) ([]MoldingInfo, EvalResult) {
	meshes, d, result := a.evaluate(source)
	if !result.OK() {
		return nil, result
	}
	byName := make(map[string]*kernel.Mesh, len(meshes))
	for _, m := range meshes {
		byName[m.PartName] = m
	}

	var infos []MoldingInfo
	for _, n := range d.Nodes() {
		md, ok := n.Data.(design.MoldingData)
		if !ok {
			continue
		}
		g := molding.New(md.Params)
		buf := g.Generate()
		info := MoldingInfo{
			Name:     nodeLabel(d, n.ID),
			Source:   md.Path.String(),
			Parts:    len(md.Params.Parts),
			Sections: len(g.Frames()),
			Closed:   g.Closed(),
			Vertices: buf.VertexCount(),
			Faces:    buf.FaceCount(),
			Anchors:  g.SectionAnchors(),
		}
		if m := byName[info.Name]; m != nil {
			info.Triangles = m.TriangleCount()
			box := sdfx.BoundingBox(m)
			info.Min = [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
			info.Max = [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
		}
		infos = append(infos, info)
	}
	return infos, result
}
