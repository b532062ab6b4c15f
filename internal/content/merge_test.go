//go:build unit

package content

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMerge_NilIncomingReturnsDefaults(t *testing.T) {
	defaults := Node{
		"hero": Node{"title": "X", "subtitle": "Y"},
		"faq":  Node{"items": []any{Node{"question": "Q"}}},
	}

	merged := Merge(defaults, nil)

	if !reflect.DeepEqual(merged, defaults) {
		t.Errorf("expected merge with nil incoming to equal defaults, got %v", merged)
	}
	// The result must be a fresh map, not the defaults map itself.
	merged["extra"] = "value"
	if _, ok := defaults["extra"]; ok {
		t.Error("mutating the merged tree leaked into defaults")
	}
}

func TestMerge_FieldCompleteness(t *testing.T) {
	defaults := Node{
		"hero":  Node{"title": "X", "subtitle": "Y"},
		"intro": Node{"heading": "H", "body": "B"},
		"cta":   Node{"ctaLabel": "L"},
	}
	incoming := Node{
		"hero": Node{"title": "Custom"},
	}

	merged := Merge(defaults, incoming)

	for _, key := range []string{"hero", "intro", "cta"} {
		if _, ok := merged[key]; !ok {
			t.Errorf("expected merged tree to contain key %q", key)
		}
	}
	hero := merged["hero"].(Node)
	if hero["subtitle"] != "Y" {
		t.Errorf("expected default subtitle to survive, got %v", hero["subtitle"])
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	defaults := Node{
		"hero": Node{"title": "X"},
		"faq":  Node{"items": []any{Node{"question": "Q1"}, Node{"question": "Q2"}}},
	}
	incoming := Node{
		"hero": Node{"title": "Y"},
		"faq":  Node{"items": []any{}},
	}

	defaultsBefore, _ := json.Marshal(defaults)
	incomingBefore, _ := json.Marshal(incoming)

	Merge(defaults, incoming)

	defaultsAfter, _ := json.Marshal(defaults)
	incomingAfter, _ := json.Marshal(incoming)
	if string(defaultsBefore) != string(defaultsAfter) {
		t.Error("merge mutated the defaults tree")
	}
	if string(incomingBefore) != string(incomingAfter) {
		t.Error("merge mutated the incoming tree")
	}
}

func TestMerge_EmptyArrayFallsBackToDefault(t *testing.T) {
	defaults := Node{"items": []any{"a", "b"}}
	incoming := Node{"items": []any{}}

	merged := Merge(defaults, incoming)

	if !reflect.DeepEqual(merged["items"], []any{"a", "b"}) {
		t.Errorf("expected empty persisted array to fall back to default, got %v", merged["items"])
	}
}

func TestMerge_NonEmptyArrayOverrides(t *testing.T) {
	defaults := Node{"items": []any{"a", "b"}}
	incoming := Node{"items": []any{"c"}}

	merged := Merge(defaults, incoming)

	if !reflect.DeepEqual(merged["items"], []any{"c"}) {
		t.Errorf("expected non-empty persisted array to win, got %v", merged["items"])
	}
}

func TestMerge_EmptyArrayWithoutDefaultStaysEmpty(t *testing.T) {
	defaults := Node{}
	incoming := Node{"items": []any{}}

	merged := Merge(defaults, incoming)

	if !reflect.DeepEqual(merged["items"], []any{}) {
		t.Errorf("expected empty array with no default to stay empty, got %v", merged["items"])
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	defaults := Node{"hero": Node{"title": "X"}}
	incoming := Node{"hero": Node{"title": "Y"}}

	merged := Merge(defaults, incoming)

	if merged["hero"].(Node)["title"] != "Y" {
		t.Errorf("expected persisted scalar to win, got %v", merged["hero"].(Node)["title"])
	}
}

func TestMerge_NullScalarFallsBackToDefault(t *testing.T) {
	defaults := Node{"hero": Node{"title": "X"}}
	incoming := Node{"hero": Node{"title": nil}}

	merged := Merge(defaults, incoming)

	if merged["hero"].(Node)["title"] != "X" {
		t.Errorf("expected null scalar to fall back to default, got %v", merged["hero"].(Node)["title"])
	}
}

func TestMerge_RecursiveNestedObjectMerge(t *testing.T) {
	defaults := Node{
		"team": Node{
			"james": Node{"bio": "A"},
		},
	}
	incoming := Node{
		"team": Node{
			"james": Node{"name": "B"},
		},
	}

	merged := Merge(defaults, incoming)

	james := merged["team"].(Node)["james"].(Node)
	if james["name"] != "B" || james["bio"] != "A" {
		t.Errorf("expected {name: B, bio: A}, got %v", james)
	}
}

func TestMerge_NewTopLevelFieldPassesThrough(t *testing.T) {
	defaults := Node{"hero": Node{"title": "X"}}
	incoming := Node{"announcement": Node{"message": "We moved office"}}

	merged := Merge(defaults, incoming)

	ann, ok := merged["announcement"].(Node)
	if !ok || ann["message"] != "We moved office" {
		t.Errorf("expected unknown key to pass through unchanged, got %v", merged["announcement"])
	}
}

func TestMerge_NestedObjectWithoutDefaultRecursesIntoEmpty(t *testing.T) {
	defaults := Node{}
	incoming := Node{"banner": Node{"text": "Hello", "dismissed": nil}}

	merged := Merge(defaults, incoming)

	banner := merged["banner"].(Node)
	if banner["text"] != "Hello" {
		t.Errorf("expected nested value to survive, got %v", banner["text"])
	}
	// A null scalar with no default is kept so genuinely new fields are not dropped.
	if v, ok := banner["dismissed"]; !ok || v != nil {
		t.Errorf("expected null field with no default to be kept, got %v", banner)
	}
}

func TestMerge_JSONRoundTripShapes(t *testing.T) {
	// Persisted rows arrive via json.Unmarshal, so exercise the merge with the
	// concrete types the decoder produces.
	defaults := Defaults("home")
	raw := []byte(`{"hero": {"subtitle": "New subtitle"}, "faq": {"items": []}}`)
	var incoming Node
	if err := json.Unmarshal(raw, &incoming); err != nil {
		t.Fatalf("failed to unmarshal incoming: %v", err)
	}

	merged := Merge(defaults, incoming)

	hero := merged["hero"].(Node)
	if hero["subtitle"] != "New subtitle" {
		t.Errorf("expected edited subtitle, got %v", hero["subtitle"])
	}
	if hero["title"] != "Life Sciences, Biometrics & Data Recruitment Specialists" {
		t.Errorf("expected untouched default title, got %v", hero["title"])
	}
	items := merged["faq"].(Node)["items"].([]any)
	if len(items) != 6 {
		t.Errorf("expected cleared faq items to fall back to the 6 defaults, got %d", len(items))
	}
}
