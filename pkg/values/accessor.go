package values

import (
	"github.com/diwise/entity-service/pkg/variant"
)

type valueAccessor struct {
	*variant.Accessor[Value, Kind]
}

// Accessor extracts the active branch of a Value by its Kind
var Accessor = valueAccessor{variant.New("value", func() map[Kind]func(Value) any {
	return map[Kind]func(Value) any{
		KindString:    func(v Value) any { return v.String },
		KindLong:      func(v Value) any { return v.Long },
		KindInt:       func(v Value) any { return v.Int },
		KindFloat:     func(v Value) any { return v.Float },
		KindDouble:    func(v Value) any { return v.Double },
		KindBytes:     func(v Value) any { return nonNilBytes(v.Bytes) },
		KindBool:      func(v Value) any { return v.Boolean },
		KindTimestamp: func(v Value) any { return v.Timestamp },

		KindStringArray:  func(v Value) any { return nonNilSlice(v.StringArray) },
		KindLongArray:    func(v Value) any { return nonNilSlice(v.LongArray) },
		KindIntArray:     func(v Value) any { return nonNilSlice(v.IntArray) },
		KindFloatArray:   func(v Value) any { return nonNilSlice(v.FloatArray) },
		KindDoubleArray:  func(v Value) any { return nonNilSlice(v.DoubleArray) },
		KindBytesArray:   func(v Value) any { return nonNilSlice(v.BytesArray) },
		KindBooleanArray: func(v Value) any { return nonNilSlice(v.BooleanArray) },

		KindStringMap:  func(v Value) any { return nonNilMap(v.StringMap) },
		KindLongMap:    func(v Value) any { return nonNilMap(v.LongMap) },
		KindIntMap:     func(v Value) any { return nonNilMap(v.IntMap) },
		KindFloatMap:   func(v Value) any { return nonNilMap(v.FloatMap) },
		KindDoubleMap:  func(v Value) any { return nonNilMap(v.DoubleMap) },
		KindBytesMap:   func(v Value) any { return nonNilMap(v.BytesMap) },
		KindBooleanMap: func(v Value) any { return nonNilMap(v.BooleanMap) },
	}
})}

func (a valueAccessor) Native(v Value) (any, error) {
	return variant.Get[any](a.Accessor, v, v.Type)
}

func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func nonNilSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}

func nonNilMap[M ~map[string]V, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
