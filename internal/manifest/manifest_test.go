// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	m := Load(filepath.Join(t.TempDir(), "absent.json"))
	if m.Version != 1 {
		t.Errorf("version = %d, want 1", m.Version)
	}
	if m.Len() != 0 {
		t.Errorf("items = %d, want 0", m.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := Load(path)
	if m.Len() != 0 {
		t.Errorf("corrupt manifest loaded %d items, want fresh start", m.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "manifest.json")

	m := New()
	m.Record("abc123", Record{
		Status:       StatusAdded,
		OriginalName: "doc.pdf",
		StoredPath:   "/data/doc.pdf",
		IngestedAt:   "2026-02-01T10:00:00",
	})
	m.Record("def456", Record{
		Status:    StatusSkippedSimilar,
		Keyword:   "ai safety",
		Title:     "Some article",
		Link:      "https://example.com/a",
		Published: "Mon, 02 Feb 2026 09:00:00 GMT",
		SeenAt:    "2026-02-02T09:05:00",
	})

	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Load(path)
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, m)
	}
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	content := `{"version":1,"items":{"id1":{"status":"added","future_field":"x"}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m := Load(path)
	if !m.Contains("id1") {
		t.Fatal("id1 missing after load")
	}
	if m.Items["id1"].Status != StatusAdded {
		t.Errorf("status = %q, want %q", m.Items["id1"].Status, StatusAdded)
	}
}

func TestContainsAndRecord(t *testing.T) {
	m := New()
	if m.Contains("x") {
		t.Error("empty manifest contains x")
	}
	m.Record("x", Record{Status: StatusAdded})
	if !m.Contains("x") {
		t.Error("recorded identity not found")
	}
}

func TestLoadMissingItemsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(`{"version":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m := Load(path)
	// Items must be usable immediately.
	m.Record("x", Record{Status: StatusAdded})
	if !m.Contains("x") {
		t.Error("record on loaded manifest without items map failed")
	}
}
