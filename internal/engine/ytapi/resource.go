package ytapi

// Lookup walks nested objects along path. It returns false when any step is
// missing or not an object, so malformed records never panic.
func Lookup(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// StringAt returns the non-empty string at path, or "".
func StringAt(v any, path ...string) string {
	raw, ok := Lookup(v, path...)
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return s
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case Response:
		return obj, true
	}
	return nil, false
}
