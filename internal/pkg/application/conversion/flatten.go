package conversion

import (
	"encoding/base64"
	"math"
	"strconv"

	"github.com/diwise/entity-service/pkg/errors"
	"github.com/diwise/entity-service/pkg/query"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/tidwall/gjson"
)

// A matcher recognises one JSON shape and converts it into a typed value.
// ok is false when the node does not have the matcher's shape.
type matcher struct {
	name  string
	match func(node gjson.Result) (v values.Value, ok bool, err error)
}

// Matchers are tried in order and the first match wins. A map wrapper must
// be claimed before the fallback that recurses into objects.
var matchers = []matcher{
	{"primitive", matchPrimitive},
	{"list", matchList},
	{"map", matchMap},
	{"direct", matchDirect},
}

// Flatten converts a stored document into a map of typed values keyed by
// dot joined paths
func Flatten(document []byte) (map[string]values.Value, error) {
	if !gjson.ValidBytes(document) {
		return nil, errors.NewConversionError(errors.ErrDocumentParseFailure, "document is not valid json")
	}

	root := gjson.ParseBytes(document)
	if !root.IsObject() {
		return nil, errors.NewConversionError(errors.ErrDocumentParseFailure, "document is not a json object")
	}

	flat := map[string]values.Value{}
	if err := flattenInto(flat, "", root); err != nil {
		return nil, err
	}

	return flat, nil
}

// ToRow flattens document and picks the requested columns in order. Missing
// columns yield a default value.
func ToRow(document []byte, metadata query.ResultSetMetadata) (query.Row, error) {
	flat, err := Flatten(document)
	if err != nil {
		return query.Row{}, err
	}

	row := query.Row{Columns: make([]values.Value, 0, len(metadata.Columns))}
	for _, c := range metadata.Columns {
		row.Columns = append(row.Columns, flat[c.ColumnName])
	}

	return row, nil
}

func flattenInto(flat map[string]values.Value, prefix string, node gjson.Result) error {
	var err error

	node.ForEach(func(key, child gjson.Result) bool {
		path := key.String()
		if prefix != "" {
			path = prefix + "." + path
		}

		if child.Type == gjson.Null {
			return true
		}

		for _, m := range matchers {
			v, ok, merr := m.match(child)
			if merr != nil {
				err = errors.NewConversionError(errors.ErrDocumentParseFailure, "%s: %s", path, merr.Error())
				return false
			}
			if ok {
				flat[path] = v
				return true
			}
		}

		if child.IsObject() {
			err = flattenInto(flat, path, child)
			return err == nil
		}

		return true
	})

	return err
}

// singleField returns the only field of an object node
func singleField(node gjson.Result) (string, gjson.Result, bool) {
	if !node.IsObject() {
		return "", gjson.Result{}, false
	}

	fields := node.Map()
	if len(fields) != 1 {
		return "", gjson.Result{}, false
	}

	for k, v := range fields {
		return k, v, true
	}

	return "", gjson.Result{}, false
}

// storedScalar decodes {"<storage key>": v}
func storedScalar(node gjson.Result) (values.Kind, any, bool, error) {
	key, raw, ok := singleField(node)
	if !ok {
		return values.KindString, nil, false, nil
	}

	kind, ok := values.KindForStorageKey(key)
	if !ok {
		return values.KindString, nil, false, nil
	}

	native, ok, err := decodeScalar(kind, raw)
	return kind, native, ok, err
}

func decodeScalar(kind values.Kind, r gjson.Result) (any, bool, error) {
	switch kind {
	case values.KindString:
		if r.Type == gjson.String {
			return r.Str, true, nil
		}
	case values.KindLong, values.KindTimestamp:
		if r.Type == gjson.Number {
			return r.Int(), true, nil
		}
		if r.Type == gjson.String {
			l, err := strconv.ParseInt(r.Str, 10, 64)
			return l, err == nil, err
		}
	case values.KindInt:
		if r.Type == gjson.Number {
			return int32(r.Int()), true, nil
		}
	case values.KindFloat:
		if r.Type == gjson.Number {
			return float32(r.Float()), true, nil
		}
	case values.KindDouble:
		if r.Type == gjson.Number {
			return r.Float(), true, nil
		}
	case values.KindBytes:
		if r.Type == gjson.String {
			b, err := base64.StdEncoding.DecodeString(r.Str)
			return b, err == nil, err
		}
	case values.KindBool:
		if r.Type == gjson.True || r.Type == gjson.False {
			return r.Bool(), true, nil
		}
	}

	return nil, false, nil
}

func matchPrimitive(node gjson.Result) (values.Value, bool, error) {
	key, inner, ok := singleField(node)
	if !ok || key != values.WrapperValue {
		return values.Value{}, false, nil
	}

	kind, native, ok, err := storedScalar(inner)
	if err != nil || !ok {
		return values.Value{}, false, err
	}

	v, err := values.Of(kind, native)
	return v, err == nil, err
}

func matchList(node gjson.Result) (values.Value, bool, error) {
	key, wrapper, ok := singleField(node)
	if !ok || key != values.WrapperValueList {
		return values.Value{}, false, nil
	}

	key, list, ok := singleField(wrapper)
	if !ok || key != values.WrapperValues || !list.IsArray() {
		return values.Value{}, false, nil
	}

	elements := list.Array()
	kinds := make([]values.Kind, 0, len(elements))
	natives := make([]any, 0, len(elements))
	raw := make([]string, 0, len(elements))

	for _, e := range elements {
		kind, native, ok, err := storedScalar(e)
		if err != nil || !ok {
			return values.Value{}, false, err
		}

		_, inner, _ := singleField(e)
		kinds = append(kinds, kind)
		natives = append(natives, native)
		raw = append(raw, inner.String())
	}

	kind, shared := sharedKind(kinds)
	if !shared {
		return values.StringArray(raw...), true, nil
	}

	v, err := arrayOf(kind, natives)
	return v, err == nil, err
}

func matchMap(node gjson.Result) (values.Value, bool, error) {
	key, wrapper, ok := singleField(node)
	if !ok || key != values.WrapperValueMap {
		return values.Value{}, false, nil
	}

	key, entries, ok := singleField(wrapper)
	if !ok || key != values.WrapperValues || !entries.IsObject() {
		return values.Value{}, false, nil
	}

	fields := entries.Map()
	kinds := make([]values.Kind, 0, len(fields))
	natives := make(map[string]any, len(fields))
	raw := make(map[string]string, len(fields))

	for k, e := range fields {
		wrapperKey, inner, ok := singleField(e)
		if !ok || wrapperKey != values.WrapperValue {
			return values.Value{}, false, nil
		}

		kind, native, ok, err := storedScalar(inner)
		if err != nil || !ok {
			return values.Value{}, false, err
		}

		_, scalar, _ := singleField(inner)
		kinds = append(kinds, kind)
		natives[k] = native
		raw[k] = scalar.String()
	}

	kind, shared := sharedKind(kinds)
	if !shared {
		return values.StringMap(raw), true, nil
	}

	v, err := mapOf(kind, natives)
	return v, err == nil, err
}

// matchDirect accepts plain JSON scalars and arrays of scalars of one type
func matchDirect(node gjson.Result) (values.Value, bool, error) {
	switch node.Type {
	case gjson.String:
		return values.String(node.Str), true, nil
	case gjson.True, gjson.False:
		return values.Bool(node.Bool()), true, nil
	case gjson.Number:
		return number(node), true, nil
	}

	if !node.IsArray() {
		return values.Value{}, false, nil
	}

	elements := node.Array()
	if len(elements) == 0 {
		return values.StringArray(), true, nil
	}

	kinds := make([]values.Kind, 0, len(elements))
	for _, e := range elements {
		var k values.Kind
		switch e.Type {
		case gjson.String:
			k = values.KindString
		case gjson.True, gjson.False:
			k = values.KindBool
		case gjson.Number:
			k = number(e).Type
		default:
			return values.Value{}, false, nil
		}
		kinds = append(kinds, k)
	}

	kind, shared := sharedNumericKind(kinds)
	if !shared {
		return values.Value{}, false, nil
	}

	natives := make([]any, 0, len(elements))
	for _, e := range elements {
		switch kind {
		case values.KindString:
			natives = append(natives, e.Str)
		case values.KindBool:
			natives = append(natives, e.Bool())
		case values.KindInt:
			natives = append(natives, int32(e.Int()))
		case values.KindLong:
			natives = append(natives, e.Int())
		default:
			natives = append(natives, e.Float())
		}
	}

	v, err := arrayOf(kind, natives)
	return v, err == nil, err
}

// number types a JSON number: integers that fit 32 bits are INT, larger
// integers LONG and anything else DOUBLE
func number(r gjson.Result) values.Value {
	i, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil {
		return values.Double(r.Float())
	}

	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return values.Int(int32(i))
	}

	return values.Long(i)
}

func sharedKind(kinds []values.Kind) (values.Kind, bool) {
	if len(kinds) == 0 {
		return values.KindString, true
	}

	first := elementKind(kinds[0])
	for _, k := range kinds[1:] {
		if elementKind(k) != first {
			return values.KindString, false
		}
	}

	return first, true
}

// sharedNumericKind widens mixed numeric kinds to the smallest kind that can
// hold them all
func sharedNumericKind(kinds []values.Kind) (values.Kind, bool) {
	rank := map[values.Kind]int{values.KindInt: 0, values.KindLong: 1, values.KindDouble: 2}

	widest := kinds[0]
	for _, k := range kinds[1:] {
		if k == widest {
			continue
		}

		rk, kIsNumber := rank[k]
		rw, wIsNumber := rank[widest]
		if !kIsNumber || !wIsNumber {
			return values.KindString, false
		}

		if rk > rw {
			widest = k
		}
	}

	return widest, true
}

// elementKind maps timestamps onto LONG since there are no timestamp arrays or maps
func elementKind(k values.Kind) values.Kind {
	if k == values.KindTimestamp {
		return values.KindLong
	}
	return k
}

func arrayOf(kind values.Kind, natives []any) (values.Value, error) {
	arrayKind, ok := values.ArrayOf(kind)
	if !ok {
		return values.Value{}, errors.NewConversionError(errors.ErrUnsupportedVariant, "no array variant for %s", kind)
	}

	var native any
	switch kind {
	case values.KindString:
		native = typedSlice[string](natives)
	case values.KindLong:
		native = typedSlice[int64](natives)
	case values.KindInt:
		native = typedSlice[int32](natives)
	case values.KindFloat:
		native = typedSlice[float32](natives)
	case values.KindDouble:
		native = typedSlice[float64](natives)
	case values.KindBytes:
		native = typedSlice[[]byte](natives)
	case values.KindBool:
		native = typedSlice[bool](natives)
	}

	return values.Of(arrayKind, native)
}

func mapOf(kind values.Kind, natives map[string]any) (values.Value, error) {
	mapKind, ok := values.MapOf(kind)
	if !ok {
		return values.Value{}, errors.NewConversionError(errors.ErrUnsupportedVariant, "no map variant for %s", kind)
	}

	var native any
	switch kind {
	case values.KindString:
		native = typedMap[string](natives)
	case values.KindLong:
		native = typedMap[int64](natives)
	case values.KindInt:
		native = typedMap[int32](natives)
	case values.KindFloat:
		native = typedMap[float32](natives)
	case values.KindDouble:
		native = typedMap[float64](natives)
	case values.KindBytes:
		native = typedMap[[]byte](natives)
	case values.KindBool:
		native = typedMap[bool](natives)
	}

	return values.Of(mapKind, native)
}

func typedSlice[T any](natives []any) []T {
	out := make([]T, 0, len(natives))
	for _, n := range natives {
		out = append(out, n.(T))
	}
	return out
}

func typedMap[T any](natives map[string]any) map[string]T {
	out := make(map[string]T, len(natives))
	for k, n := range natives {
		out[k] = n.(T)
	}
	return out
}
