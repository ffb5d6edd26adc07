package maputil

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v2"
)

func TestCastKeysToStrings(t *testing.T) {
	var raw map[interface{}]interface{}
	doc := `
name: demo
steps:
- name: a
  env:
    FOO: bar
`
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	actual, err := CastKeysToStrings(raw)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}

	expected := map[string]interface{}{
		"name": "demo",
		"steps": []interface{}{
			map[string]interface{}{
				"name": "a",
				"env":  map[string]interface{}{"FOO": "bar"},
			},
		},
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("actual value %s doesn't match expected value %s", spew.Sdump(actual), spew.Sdump(expected))
	}
}

func TestCastKeysToStringsRejectsNonStringKey(t *testing.T) {
	if _, err := CastKeysToStrings(map[interface{}]interface{}{1: "a"}); err == nil {
		t.Error("expected an error for a non-string key")
	}
}

func TestCastKeysToStringsRejectsNonMap(t *testing.T) {
	if _, err := CastKeysToStrings("not a map"); err == nil {
		t.Error("expected an error for a non-map value")
	}
}
