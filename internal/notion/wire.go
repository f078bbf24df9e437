package notion

import "encoding/json"

// object is one JSON object of the Notion wire format with its fields left
// raw. Fields are decoded one at a time so a field of the wrong shape falls
// back to its default without affecting its siblings.
type object map[string]json.RawMessage

// asObject returns nil when raw is not a JSON object.
func asObject(raw json.RawMessage) object {
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil
	}
	return o
}

func (o object) obj(key string) object {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	return asObject(raw)
}

// str returns the field as a string. ok is false when the field is absent,
// null or not a string.
func (o object) str(key string) (string, bool) {
	raw, ok := o[key]
	if !ok {
		return "", false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

func (o object) list(key string) []json.RawMessage {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	var l []json.RawMessage
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return l
}

// flag reads a boolean field with JSON truthiness: false, null, 0, "", [] and
// {} are false and every other value is true.
func (o object) flag(key string) bool {
	raw, ok := o[key]
	if !ok {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
