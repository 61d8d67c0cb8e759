package content

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromCty converts a configuration value into a scalar Content of type want.
// Lazy and function types cannot be expressed in configuration.
func FromCty(v cty.Value, want Type) (Content, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value must be known and not null")
	}

	var target cty.Type
	switch want {
	case TypeInteger, TypeFloat:
		target = cty.Number
	case TypeBoolean:
		target = cty.Bool
	case TypeString:
		target = cty.String
	default:
		return nil, fmt.Errorf("%s values cannot be set from configuration", want)
	}

	converted, err := convert.Convert(v, target)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to %s: %w", v.Type().FriendlyName(), want, err)
	}

	switch want {
	case TypeInteger:
		var i int64
		if err := gocty.FromCtyValue(converted, &i); err != nil {
			return nil, fmt.Errorf("cannot convert to %s: %w", want, err)
		}
		return Integer(i), nil
	case TypeFloat:
		var f float64
		if err := gocty.FromCtyValue(converted, &f); err != nil {
			return nil, fmt.Errorf("cannot convert to %s: %w", want, err)
		}
		return Float(f), nil
	case TypeBoolean:
		return Boolean(converted.True()), nil
	default:
		return String(converted.AsString()), nil
	}
}

// ImpliedType picks the Content type for a configuration value with no
// declared type. Whole numbers become Integer.
func ImpliedType(v cty.Value) (Type, error) {
	switch {
	case v.IsNull() || !v.IsKnown():
		return 0, fmt.Errorf("value must be known and not null")
	case v.Type() == cty.Bool:
		return TypeBoolean, nil
	case v.Type() == cty.String:
		return TypeString, nil
	case v.Type() == cty.Number:
		if v.AsBigFloat().IsInt() {
			return TypeInteger, nil
		}
		return TypeFloat, nil
	}
	return 0, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
}
