package enums

import "fmt"

// TacoKind discriminates regular tacos from mystery ones whose
// ingredients stay hidden until the group order is submitted.
type TacoKind string

const (
	TacoKindRegular TacoKind = "regular"
	TacoKindMystery TacoKind = "mystery"
)

var validTacoKinds = []TacoKind{
	TacoKindRegular,
	TacoKindMystery,
}

// String implements fmt.Stringer.
func (t TacoKind) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TacoKind.
func (t TacoKind) IsValid() bool {
	for _, candidate := range validTacoKinds {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTacoKind converts raw input into a TacoKind.
func ParseTacoKind(value string) (TacoKind, error) {
	for _, candidate := range validTacoKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid taco kind %q", value)
}
