// Package molding ties the pipeline together: parts are chained, offset,
// cut into mitred sections and swept with a profile into mesh buffers.
//
// Generate is the stateless entry point. A Generator owns one parameter set
// and caches the last chain for manipulator anchors. An Editor adds batched
// edits and serialized regeneration into a host mesh.
package molding

import (
	"github.com/chazu/molding/pkg/kernel"
	"github.com/chazu/molding/pkg/loft"
	"github.com/chazu/molding/pkg/path"
	"github.com/chazu/molding/pkg/profile"
	"github.com/chazu/molding/pkg/section"
	"go.uber.org/zap"
)

// Params is everything a molding is generated from.
type Params struct {
	Parts         []path.PartSpec `yaml:"parts" json:"parts"`
	Profile       profile.Spec    `yaml:",inline" json:"profile"`
	Offset        float64         `yaml:"offset" json:"offset"`     // lateral offset of the path
	ZOffset       float64         `yaml:"z_offset" json:"zOffset"` // added to every elevation
	MaterialID    int             `yaml:"material" json:"material"`
	ClosedProfile bool            `yaml:"closed_profile" json:"closedProfile"`
	CapEnds       bool            `yaml:"cap_ends" json:"capEnds"`
	TrimJoins     bool            `yaml:"trim_joins" json:"trimJoins"`
	Tolerance     float64         `yaml:"closure_tolerance" json:"closureTolerance"`
}

// DefaultParams returns a closed default profile with no parts.
func DefaultParams() Params {
	return Params{
		Profile:       profile.Default(),
		ClosedProfile: true,
		Tolerance:     section.DefaultTolerance,
	}
}

// Clone returns a copy that shares no slices with p.
func (p Params) Clone() Params {
	c := p
	if p.Parts != nil {
		c.Parts = append([]path.PartSpec(nil), p.Parts...)
	}
	return c
}

func (p Params) chain() path.Chain {
	c := path.BuildChain(p.Parts)
	if p.TrimJoins {
		return path.ApplyOffsetTrimmed(c, p.Offset, p.Tolerance)
	}
	return path.ApplyOffset(c, p.Offset)
}

func (p Params) sectionOptions() section.Options {
	return section.Options{Tolerance: p.Tolerance}
}

func (p Params) sweepOptions(closedPath bool) loft.Options {
	return loft.Options{
		MaterialID:    p.MaterialID,
		ClosedProfile: p.ClosedProfile,
		ClosedPath:    closedPath,
		ZOffset:       p.ZOffset,
		CapEnds:       p.CapEnds,
	}
}

// Generate sweeps prof along the parts at the given lateral offset, with a
// closed profile and no z offset. It keeps no state.
func Generate(parts []path.PartSpec, offset float64, prof profile.Spec, materialID int) *kernel.MeshBuffers {
	p := DefaultParams()
	p.Parts = parts
	p.Offset = offset
	p.Profile = prof
	p.MaterialID = materialID
	return New(p).Generate()
}

// Generator generates one molding. It is not safe for concurrent use.
type Generator struct {
	params Params
	log    *zap.Logger

	chain  path.Chain
	frames []section.Frame
	closed bool
	built  bool
}

// Option configures a Generator or an Editor.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New returns a Generator owning a copy of params.
func New(params Params, opts ...Option) *Generator {
	o := applyOptions(opts)
	return &Generator{params: params.Clone(), log: o.log}
}

// Params returns a copy of the generator's parameters.
func (g *Generator) Params() Params {
	return g.params.Clone()
}

// SetParams replaces the parameters and drops the cached chain.
func (g *Generator) SetParams(p Params) {
	g.params = p.Clone()
	g.built = false
}

func (g *Generator) build() {
	if g.built {
		return
	}
	opts := g.params.sectionOptions()
	g.chain = g.params.chain()
	g.frames = section.Build(g.chain, opts)
	g.closed = section.Closed(g.chain, opts)
	g.built = true
}

// Generate returns freshly allocated buffers for the current parameters.
func (g *Generator) Generate() *kernel.MeshBuffers {
	g.built = false
	g.build()
	buf := kernel.NewMeshBuffers()
	pts := g.params.Profile.Points()
	faces := loft.Sweep(buf, g.frames, pts, g.params.sweepOptions(g.closed))
	g.log.Debug("molding generated",
		zap.Int("parts", len(g.params.Parts)),
		zap.Int("sections", len(g.frames)),
		zap.Bool("closed", g.closed),
		zap.Int("vertices", buf.VertexCount()),
		zap.Int("faces", faces),
	)
	return buf
}

// Chain returns the offset chain of the last generation.
func (g *Generator) Chain() path.Chain {
	g.build()
	return g.chain
}

// Frames returns the section frames of the last generation.
func (g *Generator) Frames() []section.Frame {
	g.build()
	return g.frames
}

// Closed reports whether the path loops back on itself.
func (g *Generator) Closed() bool {
	g.build()
	return g.closed
}
