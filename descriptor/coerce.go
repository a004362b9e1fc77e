package descriptor

import (
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// exact converts v to To and reports whether the value survived unchanged.
func exact[To, From number](v From) (To, bool) {
	out := To(v)
	if From(out) != v || (v < 0) != (out < 0) {
		return 0, false
	}
	return out, true
}

// toInt accepts any Go number that converts to To without loss.
func toInt[To constraints.Integer](value any) (To, bool) {
	switch v := value.(type) {
	case int:
		return exact[To](v)
	case int8:
		return exact[To](v)
	case int16:
		return exact[To](v)
	case int32:
		return exact[To](v)
	case int64:
		return exact[To](v)
	case uint:
		return exact[To](v)
	case uint8:
		return exact[To](v)
	case uint16:
		return exact[To](v)
	case uint32:
		return exact[To](v)
	case uint64:
		return exact[To](v)
	case float32:
		return exact[To](v)
	case float64:
		return exact[To](v)
	}
	return 0, false
}

// toFloat accepts any Go number. Precision loss is expected and allowed.
func toFloat[To constraints.Float](value any) (To, bool) {
	switch v := value.(type) {
	case float32:
		return To(v), true
	case float64:
		return To(v), true
	case float16.Float16:
		return To(v.Float32()), true
	case int:
		return To(v), true
	case int8:
		return To(v), true
	case int16:
		return To(v), true
	case int32:
		return To(v), true
	case int64:
		return To(v), true
	case uint:
		return To(v), true
	case uint8:
		return To(v), true
	case uint16:
		return To(v), true
	case uint32:
		return To(v), true
	case uint64:
		return To(v), true
	}
	return 0, false
}
