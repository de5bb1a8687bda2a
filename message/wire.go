package message

import (
	"encoding/json"
	"reflect"
	"strings"
)

type keySet map[string]struct{}

// wireKeys returns the JSON object keys decoded into values of type t,
// including the ones of embedded structs.
func wireKeys(t reflect.Type) keySet {
	keys := make(keySet)
	collectWireKeys(t, keys)

	return keys
}

func collectWireKeys(t reflect.Type, keys keySet) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			collectWireKeys(field.Type, keys)
			continue
		}

		if name == "" {
			name = field.Name
		}

		keys[name] = struct{}{}
	}
}

func (keys keySet) matchesFold(key string) bool {
	for k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}

	return false
}

// canonicalize drops the keys of the JSON object in data that differ from
// a wire key only by case, as encoding/json would decode them into the
// field of that wire key.
func canonicalize(data []byte, keys keySet) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	var dropped bool

	for key := range fields {
		if _, ok := keys[key]; ok {
			continue
		}

		if keys.matchesFold(key) {
			delete(fields, key)
			dropped = true
		}
	}

	if !dropped {
		return data, nil
	}

	return json.Marshal(fields)
}
