package main

import (
	"path/filepath"
	"testing"
)

func TestOpenIndex_Backends(t *testing.T) {
	dir := t.TempDir()

	idx, err := openIndex(dir, true)
	if err != nil || idx != nil {
		t.Fatalf("disabled: idx=%v err=%v", idx, err)
	}

	t.Setenv("PLOTGEN_INDEX_BACKEND", "off")
	idx, err = openIndex(dir, false)
	if err != nil || idx != nil {
		t.Fatalf("off: idx=%v err=%v", idx, err)
	}

	t.Setenv("PLOTGEN_INDEX_BACKEND", "d1")
	if _, err := openIndex(dir, false); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}

	t.Setenv("PLOTGEN_INDEX_BACKEND", "")
	idx, err = openIndex(dir, false)
	if err != nil || idx == nil {
		t.Fatalf("sqlite: idx=%v err=%v", idx, err)
	}
	defer idx.Close()
	if got := IndexPath(dir); got != filepath.Join(dir, "index", "plots.sqlite") {
		t.Fatalf("index path: %s", got)
	}
}
