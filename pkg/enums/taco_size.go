package enums

import "fmt"

// TacoSize enumerates the fixed taco formats. Each size carries a base
// price and caps on how many meats and sauces fit inside.
type TacoSize string

const (
	TacoSizeM   TacoSize = "M"
	TacoSizeL   TacoSize = "L"
	TacoSizeXL  TacoSize = "XL"
	TacoSizeXXL TacoSize = "XXL"
)

type tacoSizeSpec struct {
	basePriceCents int
	maxMeats       int
	maxSauces      int
}

var tacoSizeSpecs = map[TacoSize]tacoSizeSpec{
	TacoSizeM:   {basePriceCents: 850, maxMeats: 1, maxSauces: 2},
	TacoSizeL:   {basePriceCents: 1050, maxMeats: 2, maxSauces: 3},
	TacoSizeXL:  {basePriceCents: 1250, maxMeats: 3, maxSauces: 3},
	TacoSizeXXL: {basePriceCents: 1500, maxMeats: 4, maxSauces: 4},
}

var validTacoSizes = []TacoSize{
	TacoSizeM,
	TacoSizeL,
	TacoSizeXL,
	TacoSizeXXL,
}

// TacoSizes returns every known size from smallest to largest.
func TacoSizes() []TacoSize {
	out := make([]TacoSize, len(validTacoSizes))
	copy(out, validTacoSizes)
	return out
}

// String implements fmt.Stringer.
func (t TacoSize) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TacoSize.
func (t TacoSize) IsValid() bool {
	_, ok := tacoSizeSpecs[t]
	return ok
}

// BasePriceCents returns the size's base price before meats.
func (t TacoSize) BasePriceCents() int {
	return tacoSizeSpecs[t].basePriceCents
}

// MaxMeats returns how many distinct meats the size accepts.
func (t TacoSize) MaxMeats() int {
	return tacoSizeSpecs[t].maxMeats
}

// MaxSauces returns how many distinct sauces the size accepts.
func (t TacoSize) MaxSauces() int {
	return tacoSizeSpecs[t].maxSauces
}

// ParseTacoSize converts raw input into a TacoSize.
func ParseTacoSize(value string) (TacoSize, error) {
	for _, candidate := range validTacoSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid taco size %q", value)
}
