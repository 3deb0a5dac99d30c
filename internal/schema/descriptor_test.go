package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

var testMeta = Metadata{
	Name:        "netflix-csv",
	Version:     "1.0.0",
	Description: "Netflix viewing activity and billing history data",
	Dialect:     "sqlite",
}

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing schema file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	raw := `{"tables":[{"name":"viewing_activity"},{"name":"billing_history"}]}`
	path := writeSchemaFile(t, raw)

	desc, err := Load(path, testMeta)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if desc.Name != "netflix-csv" || desc.Version != "1.0.0" || desc.Dialect != "sqlite" {
		t.Errorf("metadata not carried through: %+v", desc)
	}
	if string(desc.Schema) != raw {
		t.Errorf("Schema = %s, want verbatim file contents", desc.Schema)
	}
}

func TestLoad_DescriptorSerializes(t *testing.T) {
	path := writeSchemaFile(t, `{"tables":[]}`)

	desc, err := Load(path, testMeta)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := json.Marshal(desc)
	if err != nil {
		t.Fatalf("marshal descriptor: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("unmarshal descriptor: %v", err)
	}
	for _, key := range []string{"name", "version", "description", "dialect", "schema"} {
		if _, ok := round[key]; !ok {
			t.Errorf("serialized descriptor missing %q field", key)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json"), testMeta); err == nil {
		t.Error("expected error for missing schema file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeSchemaFile(t, `{"tables": [`)
	if _, err := Load(path, testMeta); err == nil {
		t.Error("expected error for malformed schema file")
	}
}
