package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadRecordsJSON(t *testing.T) {
	path := writeTemp(t, "data.json", `[
		{"id": "a", "label": "Root"},
		{"id": "b", "parentId": "a", "label": "Child"}
	]`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1]["parentId"] != "a" {
		t.Errorf("expected parentId a, got %v", records[1]["parentId"])
	}
}

func TestLoadRecordsYAML(t *testing.T) {
	path := writeTemp(t, "data.yaml", `
- id: a
  label: Root
  children:
    - id: b
      label: Child
`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	kids, ok := records[0]["children"].([]any)
	if !ok || len(kids) != 1 {
		t.Errorf("expected embedded children list, got %v", records[0]["children"])
	}
}

func TestLoadRecordsMissingFile(t *testing.T) {
	if _, err := LoadRecords(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRecordsInvalidJSON(t *testing.T) {
	path := writeTemp(t, "bad.json", `{not json`)
	if _, err := LoadRecords(path); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestDecodeRecordsExtensionFallback(t *testing.T) {
	// Unknown extensions decode as JSON.
	records, err := DecodeRecords([]byte(`[{"id":"x"}]`), ".data")
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "x" {
		t.Errorf("unexpected records: %v", records)
	}
}
