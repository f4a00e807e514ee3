package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chazu/molding/pkg/curve"
	"github.com/chazu/molding/pkg/design"
	"github.com/chazu/molding/pkg/path"
	"github.com/chazu/molding/pkg/profile"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to zygomys.
// It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: set-defaults -> set_defaults
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments.
//
// All of them respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Only a hyphen between identifier characters; a leading one is minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpProfile struct {
	spec profile.Spec
}

func (p *sexpProfile) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(profile :%s :width %g :height %g)",
		strings.ToLower(p.spec.Kind.String()), p.spec.Width, p.spec.Height)
}
func (p *sexpProfile) Type() *zygo.RegisteredType { return nil }

type sexpPart struct {
	part path.PartSpec
}

func (s *sexpPart) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(seg :length %g :angle-rad %g :dz %g)",
		s.part.Length, s.part.StartAngle, s.part.ElevationDelta)
}
func (s *sexpPart) Type() *zygo.RegisteredType { return nil }

type sexpPoint struct {
	vec v3.Vec
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g %g)", p.vec.X, p.vec.Y, p.vec.Z)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

type sexpKnot struct {
	knot curve.Knot
}

func (k *sexpKnot) SexpString(ps *zygo.PrintState) string {
	p := k.knot.Point
	return fmt.Sprintf("(knot (pt %g %g %g))", p.X, p.Y, p.Z)
}
func (k *sexpKnot) Type() *zygo.RegisteredType { return nil }

// sexpPath is a sampled path: parts relative to origin.
type sexpPath struct {
	parts  []path.PartSpec
	origin v3.Vec
	source design.PathSource
}

func (p *sexpPath) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(path %s %d parts)", p.source, len(p.parts))
}
func (p *sexpPath) Type() *zygo.RegisteredType { return nil }

type sexpNodeRef struct {
	id   design.NodeID
	name string
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// profileKeywords are the keyword arguments accepted by profile.
var profileKeywords = map[string]bool{"kind": true, "width": true, "height": true, "radius": true}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// allowOnly fails on keywords outside allowed.
func (a kwArgs) allowOnly(fn string, allowed ...string) error {
	var unknown []string
	for k := range a.kw {
		found := false
		for _, al := range allowed {
			if k == al {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: unknown keyword %s", fn, strings.Join(unknown, ", "))
}

// number reads an optional numeric keyword into dst.
func (a kwArgs) number(fn, key string, dst *float64) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// numbers reads keys[i] into dsts[i].
func (a kwArgs) numbers(fn string, keys []string, dsts ...*float64) error {
	for i, k := range keys {
		if err := a.number(fn, k, dsts[i]); err != nil {
			return err
		}
	}
	return nil
}

// flag reads an optional boolean keyword into dst.
func (a kwArgs) flag(fn, key string, dst *bool) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = b
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool. A bare keyword at the end of a call (nil) reads
// as true so :cap-ends works as a flag.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_square) and plain strings ("square").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

func toPoint(s zygo.Sexp) (v3.Vec, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

func toProfile(s zygo.Sexp) (profile.Spec, error) {
	if p, ok := s.(*sexpProfile); ok {
		return p.spec, nil
	}
	return profile.Spec{}, fmt.Errorf("expected profile, got %T (%s)", s, s.SexpString(nil))
}

func toPath(s zygo.Sexp) (*sexpPath, error) {
	if p, ok := s.(*sexpPath); ok {
		return p, nil
	}
	return nil, fmt.Errorf("expected path, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the molding builtins into a zygomys environment.
// The builtins populate d while the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *design.Design, cfg settings) {
	// Anonymous moldings are numbered per evaluation so ids stay stable
	// across runs of the same script.
	anon := 0

	// -----------------------------------------------------------------------
	// (profile :circle :width 0.02 :height 0.1 :radius 0.01)
	// -----------------------------------------------------------------------
	env.AddFunction("profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		// A leading bare keyword names the kind: (profile :circle :width 1).
		var lead zygo.Sexp
		if len(args) > 0 {
			if kw, ok := isKW(args[0]); ok && !profileKeywords[kw] {
				lead, args = &zygo.SexpStr{S: kw}, args[1:]
			}
		}
		pa := parseArgs(args)
		if err := pa.allowOnly(name, "kind", "width", "height", "radius"); err != nil {
			return zygo.SexpNull, err
		}
		spec := d.Defaults.Profile

		kindArg, ok := pa.kw["kind"]
		switch {
		case lead != nil && ok:
			return zygo.SexpNull, fmt.Errorf("profile: kind given twice")
		case lead != nil:
			kindArg, ok = lead, true
		case !ok && len(pa.positional) > 0:
			kindArg, ok = pa.positional[0], true
		}
		if ok {
			s, err := toKeywordString(kindArg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: kind: %w", err)
			}
			k, err := profile.ParseKind(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: %w", err)
			}
			spec.Kind = k
		}
		if err := pa.numbers(name, []string{"width", "height", "radius"},
			&spec.Width, &spec.Height, &spec.Radius); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpProfile{spec: spec}, nil
	})

	// -----------------------------------------------------------------------
	// (seg :length 2 :angle 90 :dz 0) ; or (seg 2 90), angle in degrees
	// -----------------------------------------------------------------------
	env.AddFunction("seg", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allowOnly(name, "length", "angle", "angle-rad", "dz"); err != nil {
			return zygo.SexpNull, err
		}
		if len(pa.positional) > 2 {
			return zygo.SexpNull, fmt.Errorf("seg: expected at most length and angle, got %d values", len(pa.positional))
		}
		var part path.PartSpec
		var deg float64
		for i, v := range pa.positional {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("seg: argument %d: %w", i+1, err)
			}
			if i == 0 {
				part.Length = f
			} else {
				deg = f
			}
		}
		if err := pa.number(name, "length", &part.Length); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.number(name, "angle", &deg); err != nil {
			return zygo.SexpNull, err
		}
		part.StartAngle = deg * math.Pi / 180
		if _, ok := pa.kw["angle-rad"]; ok {
			if _, both := pa.kw["angle"]; both {
				return zygo.SexpNull, fmt.Errorf("seg: :angle and :angle-rad are exclusive")
			}
			if err := pa.number(name, "angle-rad", &part.StartAngle); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := pa.number(name, "dz", &part.ElevationDelta); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPart{part: part}, nil
	})

	// -----------------------------------------------------------------------
	// (pt x y) or (pt x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 3 {
			return zygo.SexpNull, fmt.Errorf("pt requires 2 or 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pt: argument %d: %w", i+1, err)
			}
			c[i] = f
		}
		return &sexpPoint{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (points (pt 0 0) (pt 2 0) (pt 2 2) :closed true :reverse false)
	// -----------------------------------------------------------------------
	env.AddFunction("points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allowOnly(name, "closed", "reverse"); err != nil {
			return zygo.SexpNull, err
		}
		sp := curve.Spline{Kind: curve.Poly}
		reverse := cfg.reverse
		if err := pa.flag(name, "closed", &sp.Cyclic); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.flag(name, "reverse", &reverse); err != nil {
			return zygo.SexpNull, err
		}
		for i, a := range pa.positional {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("points: argument %d: %w", i+1, err)
			}
			sp.Knots = append(sp.Knots, curve.PolyKnot(p))
		}
		pts, err := sp.Sample(0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("points: %w", err)
		}
		parts, origin := path.PartsFromPoints(pts, reverse)
		return &sexpPath{parts: parts, origin: origin, source: design.SourcePoints}, nil
	})

	// -----------------------------------------------------------------------
	// (knot (pt 0 0)) or (knot (pt 0 0) (pt -1 0) (pt 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("knot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 && len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("knot requires a point and optionally both handles, got %d arguments", len(args))
		}
		var pts [3]v3.Vec
		for i, a := range args {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("knot: argument %d: %w", i+1, err)
			}
			pts[i] = p
		}
		if len(args) == 1 {
			return &sexpKnot{knot: curve.PolyKnot(pts[0])}, nil
		}
		return &sexpKnot{knot: curve.Knot{Point: pts[0], HandleLeft: pts[1], HandleRight: pts[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (bezier :resolution 12 :closed false (knot ...) (knot ...))
	// -----------------------------------------------------------------------
	env.AddFunction("bezier", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allowOnly(name, "resolution", "closed", "reverse"); err != nil {
			return zygo.SexpNull, err
		}
		sp := curve.Spline{Kind: curve.Bezier}
		res := float64(cfg.resolution)
		reverse := cfg.reverse
		if err := pa.number(name, "resolution", &res); err != nil {
			return zygo.SexpNull, err
		}
		if res != math.Trunc(res) || res < 0 {
			return zygo.SexpNull, fmt.Errorf("bezier: resolution %g is not a non-negative whole number", res)
		}
		if err := pa.flag(name, "closed", &sp.Cyclic); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.flag(name, "reverse", &reverse); err != nil {
			return zygo.SexpNull, err
		}
		for i, a := range pa.positional {
			k, ok := a.(*sexpKnot)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("bezier: argument %d: expected knot, got %T", i+1, a)
			}
			sp.Knots = append(sp.Knots, k.knot)
		}
		pts, err := sp.Sample(int(res))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bezier: %w", err)
		}
		parts, origin := path.PartsFromPoints(pts, reverse)
		return &sexpPath{parts: parts, origin: origin, source: design.SourceBezier}, nil
	})

	// -----------------------------------------------------------------------
	// (set-defaults :profile (profile :circle) :tolerance 0.001)
	// -----------------------------------------------------------------------
	env.AddFunction("set_defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allowOnly("set-defaults", "profile", "tolerance"); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["profile"]; ok {
			p, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("set-defaults: profile: %w", err)
			}
			d.Defaults.Profile = p
		}
		if err := pa.number("set-defaults", "tolerance", &d.Defaults.Tolerance); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (molding "rail" :profile p :offset 0 :parts (list (seg ...) ...))
	// (molding "frame" :path (points ...))
	// -----------------------------------------------------------------------
	env.AddFunction("molding", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.allowOnly(name,
			"profile", "offset", "z-offset", "material", "closed-profile",
			"cap-ends", "trim-joins", "tolerance", "parts", "path", "origin",
		); err != nil {
			return zygo.SexpNull, err
		}

		var partName string
		if len(pa.positional) > 1 {
			return zygo.SexpNull, fmt.Errorf("molding: expected a single name, got %d positional arguments", len(pa.positional))
		}
		if len(pa.positional) == 1 {
			s, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("molding: name: %w", err)
			}
			partName = s
		}

		params := cfg.base.Clone()
		params.Profile = d.Defaults.Profile
		params.Tolerance = d.Defaults.Tolerance
		data := design.MoldingData{Path: design.SourceParts}

		if v, ok := pa.kw["profile"]; ok {
			p, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("molding: profile: %w", err)
			}
			params.Profile = p
		}
		if err := pa.numbers(name, []string{"offset", "z-offset", "tolerance"},
			&params.Offset, &params.ZOffset, &params.Tolerance); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["material"]; ok {
			f, err := toFloat64(v)
			if err != nil || f != math.Trunc(f) || f < 0 {
				return zygo.SexpNull, fmt.Errorf("molding: material must be a non-negative integer, got %s", v.SexpString(nil))
			}
			params.MaterialID = int(f)
		}
		for i, key := range []string{"closed-profile", "cap-ends", "trim-joins"} {
			dst := []*bool{&params.ClosedProfile, &params.CapEnds, &params.TrimJoins}[i]
			if err := pa.flag(name, key, dst); err != nil {
				return zygo.SexpNull, err
			}
		}

		partsArg, hasParts := pa.kw["parts"]
		pathArg, hasPath := pa.kw["path"]
		switch {
		case hasParts && hasPath:
			return zygo.SexpNull, fmt.Errorf("molding: :parts and :path are exclusive")
		case hasParts:
			items, err := sexpListToSlice(partsArg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("molding: parts: %w", err)
			}
			for i, it := range items {
				s, ok := it.(*sexpPart)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("molding: parts: item %d: expected seg, got %T", i+1, it)
				}
				params.Parts = append(params.Parts, s.part)
			}
		case hasPath:
			p, err := toPath(pathArg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("molding: path: %w", err)
			}
			params.Parts = append([]path.PartSpec(nil), p.parts...)
			data.Origin = p.origin
			data.Path = p.source
		}
		if v, ok := pa.kw["origin"]; ok {
			o, err := toPoint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("molding: origin: %w", err)
			}
			data.Origin = o
		}
		data.Params = params

		key := partName
		if key == "" {
			anon++
			key = fmt.Sprintf("_anon_%d", anon)
		}
		node := &design.Node{
			ID:   design.NewNodeID("molding/" + key),
			Kind: design.NodeMolding,
			Name: partName,
			Data: data,
		}
		if err := d.Add(node); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpNodeRef{id: node.ID, name: partName}, nil
	})
}
