package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Field is one entry of a binding schema
type Field struct {
	Key      string
	bind     func(raw any, vb *errors.ValidationBuilder)
	current  func() any
	reserved bool
}

// checked adapts a setter returning an error to a field binder
func checked(key string, apply func(raw any) error) func(any, *errors.ValidationBuilder) {
	return func(raw any, vb *errors.ValidationBuilder) {
		if err := apply(raw); err != nil {
			vb.Field(key, errors.GetMessage(err))
		}
	}
}

// Float binds a number within [minValue, maxValue]
func Float(key string, target *float64, minValue, maxValue float64) Field {
	return Field{
		Key: key,
		bind: func(raw any, vb *errors.ValidationBuilder) {
			v, ok := toFloat(raw)
			if !ok {
				vb.Field(key, mismatch("a number", raw))
				return
			}
			if errors.ValidateFloatRange(key, v, minValue, maxValue, vb) {
				*target = v
			}
		},
		current: func() any { return *target },
	}
}

// Int binds a whole number within [minValue, maxValue]
func Int(key string, target *int64, minValue, maxValue int64) Field {
	return Field{
		Key: key,
		bind: func(raw any, vb *errors.ValidationBuilder) {
			v, ok := toInt(raw)
			if !ok {
				vb.Field(key, mismatch("a whole number", raw))
				return
			}
			if errors.ValidateIntRange(key, v, minValue, maxValue, vb) {
				*target = v
			}
		},
		current: func() any { return *target },
	}
}

// String binds any string
func String(key string, target *string) Field {
	return Field{
		Key: key,
		bind: func(raw any, vb *errors.ValidationBuilder) {
			v, ok := raw.(string)
			if !ok {
				vb.Field(key, mismatch("a string", raw))
				return
			}
			*target = v
		},
		current: func() any { return *target },
	}
}

// NonEmptyString binds a string that is not blank
func NonEmptyString(key string, target *string) Field {
	f := String(key, target)
	bind := f.bind
	f.bind = func(raw any, vb *errors.ValidationBuilder) {
		if v, ok := raw.(string); ok && strings.TrimSpace(v) == "" {
			errors.ValidateRequired(key, v, vb)
			return
		}
		bind(raw, vb)
	}
	return f
}

// StringList binds a list of strings, keeping order
func StringList(key string, target *[]string) Field {
	return Field{
		Key: key,
		bind: checked(key, func(raw any) error {
			list, ok := raw.([]any)
			if !ok {
				return errors.InvalidArgument(mismatch("a list of strings", raw))
			}
			out := make([]string, len(list))
			for i, item := range list {
				v, ok := item.(string)
				if !ok {
					return errors.InvalidArgumentf("item %d must be a string, got %s", i, typeName(item))
				}
				out[i] = v
			}
			*target = out
			return nil
		}),
		current: func() any {
			out := make([]string, len(*target))
			copy(out, *target)
			return out
		},
	}
}

// Enum binds a string resolved by parse
func Enum[T ~string](key string, target *T, parse func(string) (T, error)) Field {
	return Field{
		Key: key,
		bind: checked(key, func(raw any) error {
			name, ok := raw.(string)
			if !ok {
				return errors.InvalidArgument(mismatch("a name", raw))
			}
			v, err := parse(name)
			if err != nil {
				return err
			}
			*target = v
			return nil
		}),
		current: func() any { return string(*target) },
	}
}

// Custom binds a value with a caller supplied setter. current returns the
// value written back when the key is absent.
func Custom(key string, apply func(raw any) error, current func() any) Field {
	return Field{Key: key, bind: checked(key, apply), current: current}
}

// Reserved marks a key handled outside the schema so it is neither bound
// nor reported as unknown.
func Reserved(key string) Field {
	return Field{Key: key, reserved: true}
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func mismatch(want string, raw any) string {
	return fmt.Sprintf("must be %s, got %s", want, typeName(raw))
}

func typeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
