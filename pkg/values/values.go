package values

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the explicit discriminator of a Value. Readers must switch on
// Kind and never infer the active branch from which field is non-zero.
type Kind int

const (
	KindString Kind = iota
	KindLong
	KindInt
	KindFloat
	KindDouble
	KindBytes
	KindBool
	KindTimestamp

	KindStringArray
	KindLongArray
	KindIntArray
	KindFloatArray
	KindDoubleArray
	KindBytesArray
	KindBooleanArray

	KindStringMap
	KindLongMap
	KindIntMap
	KindFloatMap
	KindDoubleMap
	KindBytesMap
	KindBooleanMap
)

var kindNames = map[Kind]string{
	KindString:       "STRING",
	KindLong:         "LONG",
	KindInt:          "INT",
	KindFloat:        "FLOAT",
	KindDouble:       "DOUBLE",
	KindBytes:        "BYTES",
	KindBool:         "BOOL",
	KindTimestamp:    "TIMESTAMP",
	KindStringArray:  "STRING_ARRAY",
	KindLongArray:    "LONG_ARRAY",
	KindIntArray:     "INT_ARRAY",
	KindFloatArray:   "FLOAT_ARRAY",
	KindDoubleArray:  "DOUBLE_ARRAY",
	KindBytesArray:   "BYTES_ARRAY",
	KindBooleanArray: "BOOLEAN_ARRAY",
	KindStringMap:    "STRING_MAP",
	KindLongMap:      "LONG_MAP",
	KindIntMap:       "INT_MAP",
	KindFloatMap:     "FLOAT_MAP",
	KindDoubleMap:    "DOUBLE_MAP",
	KindBytesMap:     "BYTES_MAP",
	KindBooleanMap:   "BOOLEAN_MAP",
}

// Kinds lists every Kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindString; k <= KindBooleanMap; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown value kind %d", int(k))
	}
	return []byte(name), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown value kind %q", string(text))
}

func (k Kind) IsArray() bool {
	return k >= KindStringArray && k <= KindBooleanArray
}

func (k Kind) IsMap() bool {
	return k >= KindStringMap && k <= KindBooleanMap
}

// Scalar returns the element kind of an array or map kind
func (k Kind) Scalar() Kind {
	switch {
	case k.IsArray():
		return scalarKinds[k-KindStringArray]
	case k.IsMap():
		return scalarKinds[k-KindStringMap]
	}
	return k
}

var scalarKinds = []Kind{KindString, KindLong, KindInt, KindFloat, KindDouble, KindBytes, KindBool}

// ArrayOf returns the array kind holding elements of kind k
func ArrayOf(k Kind) (Kind, bool) {
	for idx, s := range scalarKinds {
		if s == k {
			return KindStringArray + Kind(idx), true
		}
	}
	return k, false
}

// MapOf returns the map kind holding values of kind k
func MapOf(k Kind) (Kind, bool) {
	for idx, s := range scalarKinds {
		if s == k {
			return KindStringMap + Kind(idx), true
		}
	}
	return k, false
}

// Value is a typed value. Exactly one branch, selected by Type, is populated.
type Value struct {
	Type Kind `json:"valueType"`

	String    string  `json:"string,omitempty"`
	Long      int64   `json:"long,omitempty"`
	Int       int32   `json:"int,omitempty"`
	Float     float32 `json:"float,omitempty"`
	Double    float64 `json:"double,omitempty"`
	Bytes     []byte  `json:"bytes,omitempty"`
	Boolean   bool    `json:"boolean,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"`

	StringArray  []string  `json:"stringArray,omitempty"`
	LongArray    []int64   `json:"longArray,omitempty"`
	IntArray     []int32   `json:"intArray,omitempty"`
	FloatArray   []float32 `json:"floatArray,omitempty"`
	DoubleArray  []float64 `json:"doubleArray,omitempty"`
	BytesArray   [][]byte  `json:"bytesArray,omitempty"`
	BooleanArray []bool    `json:"booleanArray,omitempty"`

	StringMap  map[string]string  `json:"stringMap,omitempty"`
	LongMap    map[string]int64   `json:"longMap,omitempty"`
	IntMap     map[string]int32   `json:"intMap,omitempty"`
	FloatMap   map[string]float32 `json:"floatMap,omitempty"`
	DoubleMap  map[string]float64 `json:"doubleMap,omitempty"`
	BytesMap   map[string][]byte  `json:"bytesMap,omitempty"`
	BooleanMap map[string]bool    `json:"booleanMap,omitempty"`
}

func String(s string) Value   { return Value{Type: KindString, String: s} }
func Long(l int64) Value      { return Value{Type: KindLong, Long: l} }
func Int(i int32) Value       { return Value{Type: KindInt, Int: i} }
func Float(f float32) Value   { return Value{Type: KindFloat, Float: f} }
func Double(d float64) Value  { return Value{Type: KindDouble, Double: d} }
func Bytes(b []byte) Value    { return Value{Type: KindBytes, Bytes: b} }
func Bool(b bool) Value       { return Value{Type: KindBool, Boolean: b} }
func Timestamp(t time.Time) Value {
	return Value{Type: KindTimestamp, Timestamp: t.UnixMilli()}
}

func StringArray(s ...string) Value  { return Value{Type: KindStringArray, StringArray: s} }
func LongArray(l ...int64) Value     { return Value{Type: KindLongArray, LongArray: l} }
func DoubleArray(d ...float64) Value { return Value{Type: KindDoubleArray, DoubleArray: d} }
func BooleanArray(b ...bool) Value   { return Value{Type: KindBooleanArray, BooleanArray: b} }

func StringMap(m map[string]string) Value { return Value{Type: KindStringMap, StringMap: m} }
func LongMap(m map[string]int64) Value    { return Value{Type: KindLongMap, LongMap: m} }

// Native returns the active branch of v as a plain Go value
func Native(v Value) (any, error) {
	return Accessor.Native(v)
}

// Canonical returns a stable textual form of v, suitable for use in keys.
// Map entries are emitted in sorted key order.
func Canonical(v Value) string {
	native, err := Native(v)
	if err != nil {
		return v.Type.String() + ":?"
	}

	b, err := json.Marshal(native)
	if err != nil {
		return v.Type.String() + ":?"
	}

	return v.Type.String() + ":" + string(b)
}

// Equal compares the active branches of a and b
func Equal(a, b Value) bool {
	return a.Type == b.Type && Canonical(a) == Canonical(b)
}
