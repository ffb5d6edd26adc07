package maputil

import (
	"fmt"
)

// CastKeysToStrings converts a yaml-decoded map, whose keys decode as
// interface{}, into the string-keyed form json tooling expects. Nested maps
// and slices are converted recursively.
func CastKeysToStrings(s interface{}) (map[string]interface{}, error) {
	m, ok := s.(map[interface{}]interface{})
	if !ok {
		if strMap, ok := s.(map[string]interface{}); ok {
			result := map[string]interface{}{}
			for k, v := range strMap {
				casted, err := recursivelyStringifyKeys(v)
				if err != nil {
					return nil, err
				}
				result[k] = casted
			}
			return result, nil
		}
		return nil, fmt.Errorf("unexpected type of map: %T", s)
	}

	result := map[string]interface{}{}
	for k, v := range m {
		str, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type of key %v: %T", k, k)
		}
		casted, err := recursivelyStringifyKeys(v)
		if err != nil {
			return nil, err
		}
		result[str] = casted
	}
	return result, nil
}

func recursivelyStringifyKeys(v interface{}) (interface{}, error) {
	switch typed := v.(type) {
	case map[interface{}]interface{}, map[string]interface{}:
		return CastKeysToStrings(typed)
	case []interface{}:
		result := make([]interface{}, len(typed))
		for i, item := range typed {
			casted, err := recursivelyStringifyKeys(item)
			if err != nil {
				return nil, err
			}
			result[i] = casted
		}
		return result, nil
	default:
		return v, nil
	}
}
