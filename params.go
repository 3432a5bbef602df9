package vista

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Keys read by ParamsFromValues.
const (
	ParamPosition = "POSITION"
	ParamCategory = "CATEGORY"
)

// ErrInvalidParam is returned when a startup parameter has an unusable type.
var ErrInvalidParam = errors.New("invalid parameter")

// Params are the startup parameters handed to the data source on every fetch.
// The zero value (position 0, empty category) is the default.
type Params struct {
	Position int    `json:"position" yaml:"position" toml:"position" mapstructure:"position"`
	Category string `json:"category" yaml:"category" toml:"category" mapstructure:"category"`
}

// ParamsFromValues reads Params from a key-value initializer keyed by
// ParamPosition and ParamCategory. Absent or nil keys keep their defaults.
// POSITION accepts any integral number that fits an int, or a numeric string.
func ParamsFromValues(values map[string]any) (Params, error) {
	return LayerParams(Params{}, values)
}

// LayerParams starts from base and applies each layer in order, so later
// layers win. Keys are matched case-insensitively; nil values and unknown
// keys are ignored.
func LayerParams(base Params, layers ...map[string]any) (Params, error) {
	v := viper.New()
	v.SetDefault(ParamPosition, base.Position)
	v.SetDefault(ParamCategory, base.Category)
	for _, layer := range layers {
		for key, value := range layer {
			if value != nil {
				v.Set(key, value)
			}
		}
	}

	var p Params
	if err := v.Unmarshal(&p, viper.DecodeHook(strictParamHook)); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return p, nil
}

// DecodeParams deserializes Params from raw bytes with the given codec.
// Keys missing from the document keep their defaults.
func DecodeParams(raw []byte, codec Codec) (Params, error) {
	var p Params
	if err := codec.Unmarshal(raw, &p); err != nil {
		return Params{}, fmt.Errorf("decode %s params: %w", codec.ContentType(), err)
	}
	return p, nil
}

// strictParamHook replaces weak decoding for Params fields: strings stay
// strings, and integers must be exact and in range.
func strictParamHook(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		if from.Kind() != reflect.String {
			return nil, fmt.Errorf("expected string, got %T", data)
		}
		return data, nil
	case reflect.Int:
		return toInt(reflect.ValueOf(data))
	default:
		return data, nil
	}
}

func toInt(v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not integral", f)
		}
		// float64(math.MaxInt) rounds up to 2^63 on 64-bit platforms.
		if f < math.MinInt || f >= -math.MinInt {
			return 0, fmt.Errorf("%v overflows int", f)
		}
		return int(f), nil
	case reflect.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.String()))
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", v.String())
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %s", v.Kind())
	}
}

var _ mapstructure.DecodeHookFuncType = strictParamHook
