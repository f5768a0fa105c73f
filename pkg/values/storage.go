package values

import (
	"fmt"
)

// Stored documents wrap typed values in one of three shapes:
//
//	{"value": {"<key>": v}}
//	{"valueList": {"values": [{"<key>": v}, ...]}}
//	{"valueMap": {"values": {"k": {"value": {"<key>": v}}}}}
const (
	WrapperValue     string = "value"
	WrapperValueList string = "valueList"
	WrapperValueMap  string = "valueMap"
	WrapperValues    string = "values"
)

var storageKeys = map[Kind]string{
	KindString:    "string",
	KindLong:      "long",
	KindInt:       "int",
	KindFloat:     "float",
	KindDouble:    "double",
	KindBytes:     "bytes",
	KindBool:      "boolean",
	KindTimestamp: "timestamp",
}

// StorageKey returns the key used for a scalar kind inside a stored wrapper
func StorageKey(k Kind) string {
	return storageKeys[k.Scalar()]
}

// KindForStorageKey is the inverse of StorageKey
func KindForStorageKey(key string) (Kind, bool) {
	for kind, k := range storageKeys {
		if k == key {
			return kind, true
		}
	}
	return KindString, false
}

// Wrap encodes v into the stored attribute shape
func Wrap(v Value) (map[string]any, error) {
	native, err := Native(v)
	if err != nil {
		return nil, err
	}

	key := StorageKey(v.Type)

	switch {
	case v.Type.IsArray():
		items := make([]any, 0)
		forEachElement(native, func(_ string, e any) {
			items = append(items, map[string]any{key: e})
		})
		return map[string]any{WrapperValueList: map[string]any{WrapperValues: items}}, nil
	case v.Type.IsMap():
		entries := map[string]any{}
		forEachElement(native, func(k string, e any) {
			entries[k] = map[string]any{WrapperValue: map[string]any{key: e}}
		})
		return map[string]any{WrapperValueMap: map[string]any{WrapperValues: entries}}, nil
	}

	if key == "" {
		return nil, fmt.Errorf("no storage key for value kind %s", v.Type)
	}

	return map[string]any{WrapperValue: map[string]any{key: native}}, nil
}

func forEachElement(native any, fn func(key string, element any)) {
	switch n := native.(type) {
	case []string:
		for _, e := range n {
			fn("", e)
		}
	case []int64:
		for _, e := range n {
			fn("", e)
		}
	case []int32:
		for _, e := range n {
			fn("", e)
		}
	case []float32:
		for _, e := range n {
			fn("", e)
		}
	case []float64:
		for _, e := range n {
			fn("", e)
		}
	case [][]byte:
		for _, e := range n {
			fn("", e)
		}
	case []bool:
		for _, e := range n {
			fn("", e)
		}
	case map[string]string:
		for k, e := range n {
			fn(k, e)
		}
	case map[string]int64:
		for k, e := range n {
			fn(k, e)
		}
	case map[string]int32:
		for k, e := range n {
			fn(k, e)
		}
	case map[string]float32:
		for k, e := range n {
			fn(k, e)
		}
	case map[string]float64:
		for k, e := range n {
			fn(k, e)
		}
	case map[string][]byte:
		for k, e := range n {
			fn(k, e)
		}
	case map[string]bool:
		for k, e := range n {
			fn(k, e)
		}
	}
}
