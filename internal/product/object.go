package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// object is a JSON object whose members are decoded on access. The opt*
// accessors never fail: a missing or mistyped member yields the zero value.
type object map[string]json.RawMessage

// decodeObject decodes data, which must be a JSON object.
func decodeObject(data []byte) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w, got %s", errNotObject, typeErr.Value)
		}

		return nil, err
	}

	if o == nil {
		return nil, fmt.Errorf("%w, got null", errNotObject)
	}

	return o, nil
}

func (o object) optString(key string) string {
	raw, ok := o[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}

// optInt64 accepts JSON numbers and strings holding a number. Fractions
// truncate toward zero; values outside the int64 range yield 0.
func (o object) optInt64(key string) int64 {
	raw, ok := o[key]
	if !ok {
		return 0
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0
	}

	switch n := v.(type) {
	case json.Number:
		return toInt64(n.String())
	case string:
		return toInt64(strings.TrimSpace(n))
	default:
		return 0
	}
}

func (o object) optInt(key string) int {
	return int(o.optInt64(key))
}

// optArray returns the elements of an array member. ok is false when the
// member is missing, null or not an array.
func (o object) optArray(key string) (elems []json.RawMessage, ok bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}

	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, false
	}

	return elems, true
}

// optObject returns an object member. ok is false when the member is
// missing, null or not an object.
func (o object) optObject(key string) (object, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return nil, false
	}

	return obj, true
}

func toInt64(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0
	}

	return int64(f)
}
