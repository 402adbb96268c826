package settingval

import (
	"fmt"
	"strings"

	"rag-admin-be/internal/entity"
)

// Coerce validates a decoded JSON value against the declared data type and
// returns the canonical representation to store. JSON numbers decode as
// float64, so int settings accept any float with a zero fraction.
func Coerce(dataType entity.SettingDataType, value interface{}) (interface{}, error) {
	switch dataType {
	case entity.SettingTypeString:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return s, nil
	case entity.SettingTypeInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != float64(int(v)) {
				return nil, fmt.Errorf("expected integer, got %v", v)
			}
			return int(v), nil
		default:
			return nil, fmt.Errorf("expected integer, got %T", value)
		}
	case entity.SettingTypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("expected number, got %T", value)
		}
	case entity.SettingTypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", value)
		}
		return b, nil
	case entity.SettingTypeJSON:
		switch value.(type) {
		case map[string]interface{}, []interface{}, nil:
			return value, nil
		default:
			return nil, fmt.Errorf("expected object or array, got %T", value)
		}
	default:
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}
}

// GetPath walks a dotted path ("social_links.github", "items.0.label")
// through a decoded JSON value. Numeric segments index into arrays.
func GetPath(value interface{}, path string) (interface{}, bool) {
	if path == "" {
		return value, true
	}
	current := value
	for _, seg := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []interface{}:
			idx, ok := arrayIndex(seg, len(node))
			if !ok {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// SetPath writes newValue at a dotted path inside a decoded JSON value,
// creating intermediate objects for missing map keys. It returns the
// updated root and whether anything actually changed, so callers can skip
// no-op persistence. Array segments must already exist; growing arrays
// through a settings write is rejected.
func SetPath(value interface{}, path string, newValue interface{}) (interface{}, bool, error) {
	if path == "" {
		return newValue, !deepEqual(value, newValue), nil
	}
	segs := strings.Split(path, ".")
	root, changed, err := setPathRec(value, segs, newValue)
	if err != nil {
		return nil, false, err
	}
	return root, changed, nil
}

func setPathRec(current interface{}, segs []string, newValue interface{}) (interface{}, bool, error) {
	seg := segs[0]
	last := len(segs) == 1

	switch node := current.(type) {
	case map[string]interface{}:
		if last {
			old, existed := node[seg]
			if existed && deepEqual(old, newValue) {
				return node, false, nil
			}
			node[seg] = newValue
			return node, true, nil
		}
		child, ok := node[seg]
		if !ok {
			child = map[string]interface{}{}
		}
		updated, changed, err := setPathRec(child, segs[1:], newValue)
		if err != nil {
			return nil, false, err
		}
		node[seg] = updated
		return node, changed, nil
	case []interface{}:
		idx, ok := arrayIndex(seg, len(node))
		if !ok {
			return nil, false, fmt.Errorf("path segment %q is not a valid index", seg)
		}
		if last {
			if deepEqual(node[idx], newValue) {
				return node, false, nil
			}
			node[idx] = newValue
			return node, true, nil
		}
		updated, changed, err := setPathRec(node[idx], segs[1:], newValue)
		if err != nil {
			return nil, false, err
		}
		node[idx] = updated
		return node, changed, nil
	case nil:
		if _, isIdx := arrayIndex(seg, 1<<30); isIdx {
			return nil, false, fmt.Errorf("cannot index %q into empty value", seg)
		}
		obj := map[string]interface{}{}
		if last {
			obj[seg] = newValue
			return obj, true, nil
		}
		updated, changed, err := setPathRec(map[string]interface{}{}, segs[1:], newValue)
		if err != nil {
			return nil, false, err
		}
		obj[seg] = updated
		return obj, changed, nil
	default:
		return nil, false, fmt.Errorf("path segment %q does not address an object or array", seg)
	}
}

func arrayIndex(seg string, length int) (int, bool) {
	if seg == "" {
		return 0, false
	}
	idx := 0
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, false
		}
		idx = idx*10 + int(r-'0')
	}
	if idx >= length {
		return 0, false
	}
	return idx, true
}

func deepEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, ok := bv[k]
			if !ok || !deepEqual(v, other) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
