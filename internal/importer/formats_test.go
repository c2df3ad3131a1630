package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForPath(t *testing.T) {
	for _, name := range []string{"a.csv", "B.TSV", "c.txt", "d.xlsx", "e.DXF", "f.toml"} {
		if _, ok := ForPath(name); !ok {
			t.Errorf("expected a reader for %s", name)
		}
	}
	for _, name := range []string{"a.png", "noext", "a.csv.bak"} {
		if _, ok := ForPath(name); ok {
			t.Errorf("expected no reader for %s", name)
		}
	}
}

func TestForPathReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.CSV")
	if err := os.WriteFile(path, []byte("ID,Width,Height\na,2,3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	read, ok := ForPath(path)
	if !ok {
		t.Fatal("expected a reader")
	}
	result := read(path)
	if !result.OK() || len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %+v", result)
	}
}

func TestExtensionsSorted(t *testing.T) {
	got := Extensions()
	want := []string{".csv", ".dxf", ".toml", ".tsv", ".txt", ".xlsx"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
