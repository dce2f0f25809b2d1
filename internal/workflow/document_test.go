package workflow_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"flowscribe/internal/workflow"
)

func TestLoadProducesCanonicalText(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "flow.json", `{"name":"greeting","nodes":[{"id":1}]}`)

	document, err := workflow.Load(fileSystem, "flow.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if document.Filename() != "flow.json" {
		t.Fatalf("unexpected filename %q", document.Filename())
	}
	expected := "{\n  \"name\": \"greeting\",\n  \"nodes\": [\n    {\n      \"id\": 1\n    }\n  ]\n}"
	if document.Canonical != expected {
		t.Fatalf("unexpected canonical text:\n%s", document.Canonical)
	}
}

func TestLoadPreservesKeyOrderAsEncountered(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "flow.json", `{"zeta":1,"alpha":2}`)

	document, err := workflow.Load(fileSystem, "flow.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zetaIndex := strings.Index(document.Canonical, "zeta")
	alphaIndex := strings.Index(document.Canonical, "alpha")
	if zetaIndex < 0 || alphaIndex < 0 || zetaIndex > alphaIndex {
		t.Fatalf("expected keys in encountered order, got:\n%s", document.Canonical)
	}
}

func TestLoadPreservesNonASCII(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "flow.json", `{"label":"héllo — 日本語"}`)

	document, err := workflow.Load(fileSystem, "flow.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(document.Canonical, "héllo — 日本語") {
		t.Fatalf("expected unescaped non-ASCII text, got:\n%s", document.Canonical)
	}
}

func TestLoadCanonicalRoundTrips(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	source := `{"b":[1,2.5,null,true],"a":{"nested":"値"},"s":"x"}`
	writeFile(t, fileSystem, "flow.json", source)

	document, err := workflow.Load(fileSystem, "flow.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reparsed := decodeWithNumbers(t, document.Canonical)
	original := decodeWithNumbers(t, source)
	if !reflect.DeepEqual(reparsed, original) {
		t.Fatalf("canonical text does not round-trip:\noriginal: %#v\nreparsed: %#v", original, reparsed)
	}
	if reflect.DeepEqual(reparsed, document.Value) == false {
		t.Fatalf("reparsed canonical differs from document value")
	}
}

func decodeWithNumbers(t *testing.T, text string) any {
	t.Helper()
	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return value
}

func TestLoadInvalidJSON(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "invalid.json", `{"a": }`)

	_, err := workflow.Load(fileSystem, "invalid.json")
	var loadError *workflow.LoadError
	if !errors.As(err, &loadError) {
		t.Fatalf("expected load error, got %v", err)
	}
	if loadError.Path != "invalid.json" {
		t.Fatalf("expected path in error, got %q", loadError.Path)
	}
}

func TestLoadRejectsTrailingContent(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeFile(t, fileSystem, "double.json", "{}{}")

	_, err := workflow.Load(fileSystem, "double.json")
	var loadError *workflow.LoadError
	if !errors.As(err, &loadError) {
		t.Fatalf("expected load error, got %v", err)
	}
}
