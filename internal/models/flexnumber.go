package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber is a float64 that tolerates the loose typing of imported invoice
// documents: JSON numbers and numeric strings both decode; anything else
// marks the value invalid instead of failing the whole document. The zero
// value is a valid 0, so absent fields default to zero.
type FlexNumber struct {
	Value   float64
	Invalid bool
}

// Num builds a valid FlexNumber.
func Num(v float64) FlexNumber { return FlexNumber{Value: v} }

// BadNum builds an invalid FlexNumber.
func BadNum() FlexNumber { return FlexNumber{Invalid: true} }

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = FlexNumber{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = FlexNumber{Invalid: true}
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = FlexNumber{Invalid: true}
			return nil
		}
		*f = FlexNumber{Value: v}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = FlexNumber{Invalid: true}
		return nil
	}
	*f = FlexNumber{Value: v}
	return nil
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if f.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
