package design

import (
	"fmt"
	"math"

	"github.com/chazu/molding/pkg/molding"
)

// MinProfileSize is the smallest accepted profile width, height or radius.
const MinProfileSize = 0.001

// ValidationSeverity indicates whether a validation finding blocks
// generation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if design-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationResult separates blocking errors from warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural and parameter checks. It never mutates d.
func Validate(d *Design) ValidationResult {
	var all []ValidationError
	all = append(all, validateIndex(d)...)
	for _, n := range d.Nodes() {
		all = append(all, validateMolding(n)...)
	}

	var r ValidationResult
	for _, e := range all {
		if e.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, e)
		} else {
			r.Errors = append(r.Errors, e)
		}
	}
	return r
}

// validateIndex checks that Order and NameIndex only reference existing
// nodes and that names map back to their nodes.
func validateIndex(d *Design) []ValidationError {
	var errs []ValidationError
	for _, id := range d.Order {
		if _, ok := d.Moldings[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("order references non-existent node %s", id.Short()),
				Severity: SeverityError,
			})
		}
	}
	for name, id := range d.NameIndex {
		n, ok := d.Moldings[id]
		if !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
			continue
		}
		if n.Name != name {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("name index entry %q points at node named %q", name, n.Name),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateMolding(n *Node) []ValidationError {
	md, ok := n.Data.(MoldingData)
	if !ok {
		return []ValidationError{{
			NodeID:   n.ID,
			Message:  fmt.Sprintf("%s node carries %T", n.Kind, n.Data),
			Severity: SeverityError,
		}}
	}
	var errs []ValidationError
	add := func(sev ValidationSeverity, format string, args ...interface{}) {
		errs = append(errs, ValidationError{NodeID: n.ID, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	p := md.Params
	contributing := 0
	for i, part := range p.Parts {
		switch {
		case !finite(part.Length) || !finite(part.StartAngle) || !finite(part.ElevationDelta):
			add(SeverityError, "part %d has a non-finite value", i)
			continue
		case part.Length < 0:
			add(SeverityError, "part %d length is %.4f, must not be negative", i, part.Length)
		case part.Length == 0:
			add(SeverityWarning, "part %d has zero length and is skipped", i)
		default:
			contributing++
		}
		if math.Abs(part.StartAngle) > 2*math.Pi {
			add(SeverityError, "part %d angle %.4f rad is outside [-2pi, 2pi]", i, part.StartAngle)
		}
	}
	if contributing == 0 {
		add(SeverityWarning, "molding %q has no segments with length and produces no geometry", n.Name)
	}

	errs = append(errs, validateProfile(n.ID, p)...)
	if p.Tolerance < 0 {
		add(SeverityError, "closure tolerance %.6f must not be negative", p.Tolerance)
	}
	return errs
}

func validateProfile(id NodeID, p molding.Params) []ValidationError {
	var errs []ValidationError
	prof := p.Profile
	if prof.Width < MinProfileSize {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("profile width %.4f is below %.3f", prof.Width, MinProfileSize),
			Severity: SeverityError,
		})
	}
	if prof.Height < MinProfileSize {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("profile height %.4f is below %.3f", prof.Height, MinProfileSize),
			Severity: SeverityError,
		})
	}
	if prof.RadiusClamped() {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("profile radius %.4f clamped to %.4f", prof.Radius, prof.EffectiveRadius()),
			Severity: SeverityWarning,
		})
	}
	return errs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
