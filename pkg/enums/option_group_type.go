package enums

import "fmt"

// OptionGroupType distinguishes single-select from multi-select option groups.
type OptionGroupType string

const (
	OptionGroupTypeSingle   OptionGroupType = "single"
	OptionGroupTypeMultiple OptionGroupType = "multiple"
)

var validOptionGroupTypes = []OptionGroupType{
	OptionGroupTypeSingle,
	OptionGroupTypeMultiple,
}

// String implements fmt.Stringer.
func (o OptionGroupType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OptionGroupType.
func (o OptionGroupType) IsValid() bool {
	for _, candidate := range validOptionGroupTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOptionGroupType converts raw input into an OptionGroupType.
func ParseOptionGroupType(value string) (OptionGroupType, error) {
	for _, candidate := range validOptionGroupTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option group type %q", value)
}
