package model

import "strconv"

type Category string

const (
	CategoryWork   Category = "Work"
	CategoryMoney  Category = "Money"
	CategoryHealth Category = "Health"
	CategoryFamily Category = "Family"
	CategoryTech   Category = "Tech"
	CategoryHome   Category = "Home"
	CategoryTravel Category = "Travel"
	CategoryOther  Category = "Other"

	// CategoryAll is only meaningful as a filter value.
	CategoryAll Category = "All"
)

// Categories lists item categories in display order.
var Categories = []Category{
	CategoryWork,
	CategoryMoney,
	CategoryHealth,
	CategoryFamily,
	CategoryTech,
	CategoryHome,
	CategoryTravel,
	CategoryOther,
}

// Valid reports whether c can be assigned to an item.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a form value into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: "Unknown category " + strconv.Quote(raw) + "."}
	}
	return c, nil
}

// ParseFilterCategory is like ParseCategory but also accepts "All". An empty
// value means "All".
func ParseFilterCategory(raw string) (Category, error) {
	if raw == "" || Category(raw) == CategoryAll {
		return CategoryAll, nil
	}
	return ParseCategory(raw)
}

type Impact int

const (
	ImpactMild   Impact = 1
	Impact3      Impact = 3
	Impact5      Impact = 5
	Impact7      Impact = 7
	ImpactRaging Impact = 10
)

// Defaults preselected in the submit form.
const (
	DefaultCategory = CategoryWork
	DefaultImpact   = Impact5
)

// Impacts lists the accepted impact scores in ascending order.
var Impacts = []Impact{ImpactMild, Impact3, Impact5, Impact7, ImpactRaging}

func (i Impact) Valid() bool {
	for _, known := range Impacts {
		if i == known {
			return true
		}
	}
	return false
}

// Label is the text shown in the impact selector.
func (i Impact) Label() string {
	switch i {
	case ImpactMild:
		return "1 (Mild)"
	case ImpactRaging:
		return "10 (Raging)"
	}
	return strconv.Itoa(int(i))
}

// ParseImpact converts a form value into an Impact.
func ParseImpact(raw string) (Impact, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || !Impact(n).Valid() {
		return 0, &ValidationError{Field: "impact", Message: "Unknown impact " + strconv.Quote(raw) + "."}
	}
	return Impact(n), nil
}
