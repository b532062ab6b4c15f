package content

// Node is a page content tree as decoded from JSON: nested maps, []any
// sequences, and scalar leaves.
type Node = map[string]any

// Merge reconciles a persisted content tree against the defaults for the same
// page and returns a tree that is safe to render and edit field-by-field.
//
// The defaults tree is the schema source of truth: every key present in it is
// present in the result. Persisted values win where they are meaningfully
// present: a non-empty sequence replaces the default sequence, a non-nil
// scalar replaces the default scalar, and nested maps are merged field-wise.
// An empty persisted sequence means "not customized yet" and keeps the
// default. Keys the defaults do not know about pass through unchanged, so
// fields saved ahead of a defaults update do not vanish.
//
// Neither input is mutated; the returned tree is newly owned by the caller at
// the top level of every merged map.
func Merge(defaults, incoming Node) Node {
	if incoming == nil {
		return shallowCopy(defaults)
	}

	result := shallowCopy(defaults)
	for key, val := range incoming {
		switch v := val.(type) {
		case []any:
			if len(v) > 0 {
				result[key] = v
			} else if dv, ok := defaults[key]; ok {
				result[key] = dv
			} else {
				result[key] = []any{}
			}
		case Node:
			if v == nil {
				// A null object behaves like a missing field: keep the default.
				if dv, ok := defaults[key]; ok {
					result[key] = dv
				}
				continue
			}
			dv, _ := defaults[key].(Node)
			result[key] = Merge(dv, v)
		default:
			if v != nil {
				result[key] = v
			} else if dv, ok := defaults[key]; ok {
				result[key] = dv
			} else {
				// A null scalar with no default is kept as-is; this permits
				// introducing genuinely new fields not yet in the schema.
				result[key] = v
			}
		}
	}
	return result
}

func shallowCopy(n Node) Node {
	out := make(Node, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}

// deepCopy clones a content tree so callers can mutate the copy freely.
func deepCopy(n Node) Node {
	out := make(Node, len(n))
	for k, v := range n {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch tv := v.(type) {
	case Node:
		return deepCopy(tv)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
