package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/strut-lang/strut/formula"
)

func writeManifest(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	return path
}

func TestManifestFlag_Compile(t *testing.T) {
	path := writeManifest(t, `
expressions:
  left: "10"
  width: "left * 12"
`)

	access, err := manifestFlag{Manifest: path}.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	r, err := access["width"]()
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}

	if got := r.Evaluate(); got != 120 {
		t.Errorf("expected 120, got %v", got)
	}
}

func TestManifestFlag_CompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "syntax",
			src:  "expressions:\n  bad: \"1 +\"\n",
			want: formula.ErrSyntax,
		},
		{
			name: "unresolved",
			src:  "expressions:\n  x: \"ghost\"\n",
			want: formula.ErrUnresolvedName,
		},
		{
			name: "cycle",
			src:  "expressions:\n  x: \"2 * y\"\n  y: \"x / 2\"\n",
			want: formula.ErrCircularDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.src)

			_, err := manifestFlag{Manifest: path}.compile()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestManifestFlag_MissingFile(t *testing.T) {
	_, err := manifestFlag{Manifest: "/no/such/file.yaml"}.load()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
