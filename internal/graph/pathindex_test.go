package graph

import (
	"testing"

	"codegraph/internal/parser"
)

func rec(path string, includes ...string) *parser.FileRecord {
	return &parser.FileRecord{Path: path, Includes: includes}
}

func TestPathIndexRegistersBasenameAndRelativePath(t *testing.T) {
	a := rec("/src/core/A.h")
	ix := BuildPathIndex([]*parser.FileRecord{a}, "/src")

	if got := ix.Lookup("A.h"); len(got) != 1 || got[0] != a {
		t.Errorf("Lookup(A.h) = %v, want the registered record", got)
	}
	if got := ix.Lookup("core/A.h"); len(got) != 1 || got[0] != a {
		t.Errorf("Lookup(core/A.h) = %v, want the registered record", got)
	}
}

func TestPathIndexPreservesScanOrder(t *testing.T) {
	first := rec("/src/a/Util.h")
	second := rec("/src/b/Util.h")
	ix := BuildPathIndex([]*parser.FileRecord{first, second}, "/src")

	got := ix.Lookup("Util.h")
	if len(got) != 2 {
		t.Fatalf("Lookup(Util.h) returned %d records, want 2", len(got))
	}
	if got[0] != first || got[1] != second {
		t.Error("Lookup(Util.h) order does not match scan order")
	}
}

func TestPathIndexKeysRegistrationOrder(t *testing.T) {
	files := []*parser.FileRecord{
		rec("/src/a/One.h"),
		rec("/src/b/Two.h"),
	}
	ix := BuildPathIndex(files, "/src")

	want := []string{"One.h", "a/One.h", "Two.h", "b/Two.h"}
	got := ix.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPathIndexNodeID(t *testing.T) {
	ix := BuildPathIndex(nil, "/src")

	if got := ix.NodeID(rec("/src/core/A.h")); got != "core/A.h" {
		t.Errorf("NodeID inside root = %q, want %q", got, "core/A.h")
	}

	// Files outside the scan root keep their path verbatim.
	if got := ix.NodeID(rec("/elsewhere/B.h")); got != "/elsewhere/B.h" {
		t.Errorf("NodeID outside root = %q, want %q", got, "/elsewhere/B.h")
	}
}

func TestPathIndexOutsideRootStillRegistersBasename(t *testing.T) {
	outside := rec("/elsewhere/B.h")
	ix := BuildPathIndex([]*parser.FileRecord{outside}, "/src")

	if got := ix.Lookup("B.h"); len(got) != 1 {
		t.Errorf("Lookup(B.h) = %v, want the outside-root record", got)
	}
}
