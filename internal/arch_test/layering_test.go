package arch_test

import (
	"slices"
	"strings"
	"testing"
)

// layers places every internal package. A package may import only from its
// own layer or below.
//
//	0  leaf models and utilities, no internal imports
//	1  parsing, storage, interaction and planning over the model
//	2  command-line output
//	3  the interactive viewer
var layers = map[string]int{
	"ansi":      0,
	"logging":   0,
	"telemetry": 0,
	"timeview":  0,
	"trace":     0,
	"watch":     0,

	"config":   1,
	"interact": 1,
	"plot":     1,
	"session":  1,
	"vcd":      1,

	"ui": 2,

	"tui": 3,
}

func TestLayersCoverPackages(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, p := range packages(t) {
		seen[p.Name] = true
		if _, ok := layers[p.Name]; !ok {
			t.Errorf("package %s has no layer; add it to layers", p.Name)
		}
	}
	for name := range layers {
		if !seen[name] {
			t.Errorf("layers names %s, which no longer exists", name)
		}
	}
}

func TestNoUpwardImports(t *testing.T) {
	t.Parallel()

	for _, p := range packages(t) {
		for _, imp := range p.internalImports() {
			if layers[imp] > layers[p.Name] {
				t.Errorf("%s (layer %d) imports %s (layer %d)", p.Name, layers[p.Name], imp, layers[imp])
			}
		}
	}
}

func TestLeafPackagesImportNothingInternal(t *testing.T) {
	t.Parallel()

	for _, p := range packages(t) {
		if layers[p.Name] != 0 {
			continue
		}
		if imps := p.internalImports(); len(imps) > 0 {
			t.Errorf("%s is a leaf package but imports %v", p.Name, imps)
		}
	}
}

// The parser builds a trace and nothing else; display concerns stay out.
func TestParserDependsOnlyOnTrace(t *testing.T) {
	t.Parallel()

	if got := packageNamed(t, "vcd").internalImports(); !slices.Equal(got, []string{"trace"}) {
		t.Errorf("vcd imports %v, want only trace", got)
	}
}

// Each library is confined to the package that owns its concern.
func TestLibraryBoundaries(t *testing.T) {
	t.Parallel()

	owners := []struct {
		prefix string
		pkgs   []string
	}{
		{"github.com/charmbracelet/", []string{"tui"}},
		{"modernc.org/sqlite", []string{"session"}},
		{"github.com/pelletier/go-toml", []string{"session"}},
		{"github.com/fsnotify/fsnotify", []string{"watch"}},
		{"github.com/spf13/viper", []string{"config"}},
		{"github.com/pkg/errors", []string{"vcd"}},
		{"github.com/dustin/go-humanize", []string{"ui"}},
	}
	for _, p := range packages(t) {
		for path := range p.Imports {
			for _, o := range owners {
				if strings.HasPrefix(path, o.prefix) && !slices.Contains(o.pkgs, p.Name) {
					t.Errorf("%s imports %s, which belongs to %v", p.Name, path, o.pkgs)
				}
			}
		}
	}
}
