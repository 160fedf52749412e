package scan_test

import (
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/spachava753/apmm/internal/scan"
)

// addProject adds marker and manifest entries for a project at dir.
func addProject(fsys fstest.MapFS, dir, prop string) {
	prefix := ""
	if dir != "." {
		prefix = dir + "/"
	}
	fsys[prefix+".apmm/keep"] = &fstest.MapFile{}
	fsys[prefix+"module.prop"] = &fstest.MapFile{Data: []byte(prop)}
}

func testTree() fstest.MapFS {
	fsys := fstest.MapFS{}
	addProject(fsys, ".", "id = \"root_mod\"\n")
	addProject(fsys, "a", "id = \"mod_a\"\n")
	addProject(fsys, "a/b/c", "id = \"mod_deep\"\n")
	addProject(fsys, "a/b/c/d", "id = \"too_deep\"\n")
	addProject(fsys, "node_modules/pkg", "id = \"in_node_modules\"\n")
	addProject(fsys, "build/out", "id = \"in_build\"\n")
	addProject(fsys, "target/out", "id = \"in_target\"\n")
	addProject(fsys, ".hidden/mod", "id = \"hidden\"\n")
	addProject(fsys, "noid", "name = \"no id here\"\n")
	addProject(fsys, "z", "id = \"mod_z\"\n")
	fsys["only-manifest/module.prop"] = &fstest.MapFile{Data: []byte("id = \"half\"\n")}
	fsys["only-marker/.apmm/keep"] = &fstest.MapFile{}
	return fsys
}

func TestScan(t *testing.T) {
	s := scan.NewScanner(scan.DefaultOptions())

	got, err := s.Scan(testTree())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []scan.Candidate{
		{ID: "root_mod", Dir: "."},
		{ID: "mod_a", Dir: "a"},
		{ID: "mod_deep", Dir: "a/b/c"},
		{ID: "mod_z", Dir: "z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %+v, want %+v", got, want)
	}
}

func TestScanDepthAndSkipOptions(t *testing.T) {
	tests := []struct {
		name string
		opts scan.Options
		want []string
	}{
		{"depth one", scan.Options{MaxDepth: 1, SkipDirs: scan.DefaultSkipDirs}, []string{"root_mod", "mod_a", "mod_z"}},
		{"depth four", scan.Options{MaxDepth: 4, SkipDirs: scan.DefaultSkipDirs}, []string{"root_mod", "mod_a", "mod_deep", "too_deep", "mod_z"}},
		{"no deny list", scan.Options{MaxDepth: 3}, []string{"root_mod", "mod_a", "mod_deep", "in_build", "in_node_modules", "in_target", "mod_z"}},
		{"zero depth falls back to default", scan.Options{SkipDirs: []string{"a", "node_modules", "build", "target"}}, []string{"root_mod", "mod_z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan.NewScanner(tt.opts).Scan(testTree())
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			ids := make([]string, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestScanEmpty(t *testing.T) {
	got, err := scan.NewScanner(scan.DefaultOptions()).Scan(fstest.MapFS{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}
