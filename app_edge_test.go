package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/chazu/molding/internal/config"
	"github.com/chazu/molding/pkg/profile"
	"go.uber.org/zap/zaptest"
)

// ---------------------------------------------------------------------------
// Empty and comment-only sources: 0 meshes, 0 errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  ", ";; just a comment", "; one\n; two\n"} {
		result := NewApp().Evaluate(src)

		if len(result.Errors) != 0 {
			t.Errorf("%q: expected 0 errors, got %v", src, result.Errors)
		}
		if len(result.Meshes) != 0 {
			t.Errorf("%q: expected 0 meshes, got %d", src, len(result.Meshes))
		}
		if len(result.Warnings) != 0 {
			t.Errorf("%q: expected 0 warnings, got %d", src, len(result.Warnings))
		}
		// JSON should serialize as [] not null.
		if result.Meshes == nil || result.Errors == nil || result.Warnings == nil {
			t.Errorf("%q: result slices must be non-nil", src)
		}
	}
}

// ---------------------------------------------------------------------------
// Syntax and runtime errors are reported, not fatal.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	source := "(+ 1 2)\n(molding \"test\""
	result := NewApp().Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2EBuiltinErrorsMentionCause(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"duplicate", `(molding "a" :parts (list (seg 1))) (molding "a" :parts (list (seg 1)))`, "already defined"},
		{"bad keyword", `(molding "a" :lenght 2)`, ":lenght"},
		{"bad profile", `(molding "a" :profile (profile :oval))`, "oval"},
		{"undefined function", `(undefined-func 1 2 3)`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewApp().Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected eval error")
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error mentioning %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Validation: errors block tessellation, warnings do not.
// ---------------------------------------------------------------------------

func TestE2EValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"negative length", `(molding "a" :parts (list (seg -2)))`, "negative"},
		{"thin profile", `(molding "a" :profile (profile :square :width 0.0005) :parts (list (seg 1)))`, "width"},
		{"flat profile", `(molding "a" :profile (profile :square :height 0) :parts (list (seg 1)))`, "height"},
		{"angle out of range", `(molding "a" :parts (list (seg 1 400)))`, "angle"},
		{"negative tolerance", `(molding "a" :tolerance -1 :parts (list (seg 1)))`, "tolerance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewApp().Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(result.Errors[0].Message, tt.want) {
				t.Errorf("error %q does not mention %q", result.Errors[0].Message, tt.want)
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
			}
		})
	}
}

func TestE2EValidationWarnings(t *testing.T) {
	source := `
(molding "clamped"
  :profile (profile :circle :width 0.02 :height 0.02 :radius 0.5)
  :parts (list (seg 1)))
(molding "gappy" :parts (list (seg 1) (seg 0) (seg 1 90)))
(molding "nothing" :parts (list (seg 0)))
`
	result := NewApp().Evaluate(source)
	requireNoErrors(t, result)

	// "nothing" sweeps to no geometry and is skipped.
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}

	byNode := map[string][]string{}
	for _, w := range result.Warnings {
		byNode[w.Node] = append(byNode[w.Node], w.Message)
	}
	if !strings.Contains(strings.Join(byNode["clamped"], ";"), "clamped") {
		t.Errorf("expected a radius clamp warning, got %v", byNode["clamped"])
	}
	if !strings.Contains(strings.Join(byNode["gappy"], ";"), "zero length") {
		t.Errorf("expected a zero length warning, got %v", byNode["gappy"])
	}
	if !strings.Contains(strings.Join(byNode["nothing"], ";"), "no geometry") {
		t.Errorf("expected a no geometry warning, got %v", byNode["nothing"])
	}
}

// ---------------------------------------------------------------------------
// Rapid evaluation (debounce simulation): no panics, results follow source.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Sequential calls: zygomys keeps global state that is not safe for
	// concurrent sandbox creation, and the engine serializes anyway.
	app := NewApp()

	sources := []struct {
		src    string
		meshes int
		fails  bool
	}{
		{`(molding "ok" :parts (list (seg 1)))`, 1, false},
		{`(molding "broken"`, 0, true},
		{``, 0, false},
		{`(molding "a" :parts (list (seg 1))) (molding "b" :parts (list (seg 2)))`, 2, false},
		{`(+ 1 2)`, 0, false},
		{`;; just a comment`, 0, false},
		{`(undefined-func 1 2 3)`, 0, true},
		{`(molding "last" :path (points (pt 0 0) (pt 1 0) (pt 1 1)))`, 1, false},
	}

	for i, s := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, s.src, r)
				}
			}()
			result := app.Evaluate(s.src)
			if s.fails != !result.OK() {
				t.Errorf("iteration %d: errors %v, want failure %v", i, result.Errors, s.fails)
			}
			if len(result.Meshes) != s.meshes {
				t.Errorf("iteration %d: %d meshes, want %d", i, len(result.Meshes), s.meshes)
			}
		}()
	}
}

// ---------------------------------------------------------------------------
// Geometry edge cases.
// ---------------------------------------------------------------------------

func TestE2ELargeDimensions(t *testing.T) {
	source := `(molding "long" :profile (profile :square :width 10 :height 20) :parts (list (seg 10000) (seg 5000 -90)))`
	result := NewApp().Evaluate(source)
	requireNoErrors(t, result)
	if len(result.Meshes) != 1 || len(result.Meshes[0].Vertices) == 0 {
		t.Fatal("expected one non-empty mesh")
	}
}

func TestE2EOpenProfile(t *testing.T) {
	source := `(molding "strip" :closed-profile false :cap-ends true :parts (list (seg 1) (seg 1 45)))`
	result := NewApp().Evaluate(source)
	requireNoErrors(t, result)
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	// Open SQUARE profile: 3 quads per ring over 2 rings, no caps.
	if got := len(result.Meshes[0].Indices) / 3; got != 2*3*2 {
		t.Errorf("expected 12 triangles, got %d", got)
	}
}

func TestE2EColorPaletteWrapping(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "(molding \"m%d\" :origin (pt %d 0 0) :parts (list (seg 0.5)))\n", i, i)
	}
	result := NewApp().Evaluate(b.String())
	requireNoErrors(t, result)

	if len(result.Meshes) != 9 {
		t.Fatalf("expected 9 meshes, got %d", len(result.Meshes))
	}
	for i, m := range result.Meshes {
		if m.Color != colorPalette[i%len(colorPalette)] {
			t.Errorf("mesh %q: color %s, want %s", m.PartName, m.Color, colorPalette[i%len(colorPalette)])
		}
	}
	if result.Meshes[8].Color != result.Meshes[0].Color {
		t.Error("palette should wrap after eight moldings")
	}
}

func TestE2EConfigDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Molding.Kind = profile.Circle
	cfg.Molding.Material = 7
	app := NewAppWithConfig(cfg, zaptest.NewLogger(t))

	result := app.Evaluate(`(molding "a" :parts (list (seg 1)))`)
	requireNoErrors(t, result)
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	for _, id := range result.Meshes[0].MaterialIDs {
		if id != 7 {
			t.Fatalf("material id %d, want 7 from config", id)
		}
	}
}
