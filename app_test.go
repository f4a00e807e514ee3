package main

import (
	"os"
	"path/filepath"
	"testing"
)

func readExample(t *testing.T, name string) string {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("examples", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(source)
}

func requireNoErrors(t *testing.T, result EvalResult) {
	t.Helper()
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
}

// TestE2EExamples runs every example script through the full pipeline:
// source -> engine -> design -> tessellate -> meshes.
func TestE2EExamples(t *testing.T) {
	tests := []struct {
		file  string
		parts []string
	}{
		{"picture_frame.molding", []string{"frame"}},
		{"baseboard.molding", []string{"baseboard", "chair-rail"}},
		{"arch.molding", []string{"arch"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			app := NewApp()
			result := app.Evaluate(readExample(t, tt.file))
			requireNoErrors(t, result)
			if len(result.Warnings) > 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}

			if len(result.Meshes) != len(tt.parts) {
				t.Fatalf("expected %d meshes, got %d", len(tt.parts), len(result.Meshes))
			}
			for i, m := range result.Meshes {
				if m.PartName != tt.parts[i] {
					t.Errorf("mesh %d: PartName %q, want %q", i, m.PartName, tt.parts[i])
				}
				if len(m.Vertices) == 0 || len(m.Indices) == 0 {
					t.Errorf("part %q: empty geometry", m.PartName)
				}
				if len(m.Normals) != len(m.Vertices) {
					t.Errorf("part %q: %d normals for %d vertex floats", m.PartName, len(m.Normals), len(m.Vertices))
				}
				if len(m.UVs)/2 != len(m.Vertices)/3 {
					t.Errorf("part %q: %d uvs for %d vertices", m.PartName, len(m.UVs)/2, len(m.Vertices)/3)
				}
				if len(m.MaterialIDs) != len(m.Indices)/3 {
					t.Errorf("part %q: %d material ids for %d triangles", m.PartName, len(m.MaterialIDs), len(m.Indices)/3)
				}
				if m.Color == "" {
					t.Errorf("part %q: no color assigned", m.PartName)
				}
			}
		})
	}
}

func TestInfoPictureFrame(t *testing.T) {
	app := NewApp()
	infos, result := app.Info(readExample(t, "picture_frame.molding"))
	requireNoErrors(t, result)
	if len(infos) != 1 {
		t.Fatalf("expected 1 molding, got %d", len(infos))
	}

	in := infos[0]
	if in.Name != "frame" || in.Source != "points" {
		t.Errorf("unexpected identity %q / %q", in.Name, in.Source)
	}
	if !in.Closed {
		t.Error("expected the frame to be closed")
	}
	// Four corners, one section each; 35 complex profile points per section.
	if in.Sections != 4 {
		t.Errorf("expected 4 sections, got %d", in.Sections)
	}
	if in.Vertices != 4*35 || in.Faces != 4*35 {
		t.Errorf("expected 140 vertices and faces, got %d / %d", in.Vertices, in.Faces)
	}
	if d := in.Anchors.Length - 2.0; d > 1e-9 || d < -1e-9 {
		t.Errorf("expected centerline length 2.0, got %f", in.Anchors.Length)
	}
	if in.Triangles == 0 {
		t.Error("expected triangles")
	}
	if in.Max[0]-in.Min[0] < 0.6 {
		t.Errorf("bounding box narrower than the frame: %v..%v", in.Min, in.Max)
	}
}

func TestInfoBaseboard(t *testing.T) {
	app := NewApp()
	infos, result := app.Info(readExample(t, "baseboard.molding"))
	requireNoErrors(t, result)
	if len(infos) != 2 {
		t.Fatalf("expected 2 moldings, got %d", len(infos))
	}

	base := infos[0]
	if base.Closed {
		t.Error("three walls must not close")
	}
	if base.Sections != 4 {
		t.Errorf("expected 4 sections, got %d", base.Sections)
	}
	// Three side rings of the square profile plus two end caps.
	if base.Faces != 3*4+2 {
		t.Errorf("expected 14 faces, got %d", base.Faces)
	}

	rail := infos[1]
	if rail.Min[2] < 0.9-1e-6 {
		t.Errorf("chair rail should sit at z >= 0.9, min z = %f", rail.Min[2])
	}
}

func TestInfoArch(t *testing.T) {
	app := NewApp()
	infos, result := app.Info(readExample(t, "arch.molding"))
	requireNoErrors(t, result)
	if len(infos) != 1 {
		t.Fatalf("expected 1 molding, got %d", len(infos))
	}
	in := infos[0]
	// Two spans of 16 samples each.
	if in.Parts != 32 {
		t.Errorf("expected 32 parts, got %d", in.Parts)
	}
	if in.Sections != 33 {
		t.Errorf("expected 33 sections, got %d", in.Sections)
	}
	if in.Source != "bezier" {
		t.Errorf("expected bezier source, got %s", in.Source)
	}
}

func TestBuildWritesSTL(t *testing.T) {
	app := NewApp()
	dir := filepath.Join(t.TempDir(), "out")

	paths, result, err := app.Build(readExample(t, "baseboard.molding"), dir)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	requireNoErrors(t, result)

	want := []string{
		filepath.Join(dir, "baseboard.stl"),
		filepath.Join(dir, "chair-rail.stl"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d = %s, want %s", i, p, want[i])
		}
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if st.Size() <= 84 {
			t.Errorf("%s holds no triangles (%d bytes)", p, st.Size())
		}
	}
}

func TestBuildStopsOnErrors(t *testing.T) {
	app := NewApp()
	dir := filepath.Join(t.TempDir(), "out")

	paths, result, err := app.Build(`(molding "a" :parts (list (seg -1)))`, dir)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if result.OK() {
		t.Fatal("expected validation errors")
	}
	if len(paths) != 0 {
		t.Errorf("expected no files, got %v", paths)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("output dir should not be created on errors")
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"frame":      "frame",
		"chair-rail": "chair-rail",
		"a/b c":      "a_b_c",
		"":           "molding",
	}
	for in, want := range tests {
		if got := fileName(in); got != want {
			t.Errorf("fileName(%q) = %q, want %q", in, got, want)
		}
	}
}
