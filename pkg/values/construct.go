package values

import "fmt"

// Of builds a Value of kind k from a native Go value. The native type must
// match what Native returns for k.
func Of(k Kind, native any) (Value, error) {
	v := Value{Type: k}
	ok := true

	switch k {
	case KindString:
		v.String, ok = native.(string)
	case KindLong, KindTimestamp:
		var l int64
		l, ok = native.(int64)
		if k == KindLong {
			v.Long = l
		} else {
			v.Timestamp = l
		}
	case KindInt:
		v.Int, ok = native.(int32)
	case KindFloat:
		v.Float, ok = native.(float32)
	case KindDouble:
		v.Double, ok = native.(float64)
	case KindBytes:
		v.Bytes, ok = native.([]byte)
	case KindBool:
		v.Boolean, ok = native.(bool)
	case KindStringArray:
		v.StringArray, ok = native.([]string)
	case KindLongArray:
		v.LongArray, ok = native.([]int64)
	case KindIntArray:
		v.IntArray, ok = native.([]int32)
	case KindFloatArray:
		v.FloatArray, ok = native.([]float32)
	case KindDoubleArray:
		v.DoubleArray, ok = native.([]float64)
	case KindBytesArray:
		v.BytesArray, ok = native.([][]byte)
	case KindBooleanArray:
		v.BooleanArray, ok = native.([]bool)
	case KindStringMap:
		v.StringMap, ok = native.(map[string]string)
	case KindLongMap:
		v.LongMap, ok = native.(map[string]int64)
	case KindIntMap:
		v.IntMap, ok = native.(map[string]int32)
	case KindFloatMap:
		v.FloatMap, ok = native.(map[string]float32)
	case KindDoubleMap:
		v.DoubleMap, ok = native.(map[string]float64)
	case KindBytesMap:
		v.BytesMap, ok = native.(map[string][]byte)
	case KindBooleanMap:
		v.BooleanMap, ok = native.(map[string]bool)
	default:
		return Value{}, fmt.Errorf("unknown value kind %d", int(k))
	}

	if !ok {
		return Value{}, fmt.Errorf("%T is not a valid native value for %s", native, k)
	}

	return v, nil
}
