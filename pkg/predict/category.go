package predict

import "strings"

// Category is the label returned by the prediction service.
type Category string

const (
	InsufficientWeight Category = "Insufficient Weight"
	NormalWeight       Category = "Normal Weight"
	OverweightLevelI   Category = "Overweight Level I"
	OverweightLevelII  Category = "Overweight Level II"
	ObesityTypeI       Category = "Obesity Type I"
	ObesityTypeII      Category = "Obesity Type II"
	ObesityTypeIII     Category = "Obesity Type III"
)

// Categories lists every known category from lightest to heaviest.
func Categories() []Category {
	return []Category{
		InsufficientWeight,
		NormalWeight,
		OverweightLevelI,
		OverweightLevelII,
		ObesityTypeI,
		ObesityTypeII,
		ObesityTypeIII,
	}
}

// Normalize maps the underscore spelling used by the model's training labels
// ("Overweight_Level_I") onto the canonical spaced form. Unknown labels are
// returned trimmed with ok set to false.
func Normalize(label string) (Category, bool) {
	candidate := Category(strings.ReplaceAll(strings.TrimSpace(label), "_", " "))
	for _, known := range Categories() {
		if candidate == known {
			return known, true
		}
	}
	return Category(strings.TrimSpace(label)), false
}

// Known reports whether c is one of the seven categories in either spelling.
func (c Category) Known() bool {
	_, ok := Normalize(string(c))
	return ok
}

// String returns the label as received or normalised.
func (c Category) String() string {
	return string(c)
}
