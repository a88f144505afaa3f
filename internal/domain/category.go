package domain

// Category is the closed classification set. CategoryOther is the fallback
// assigned when the classifier is uncertain or the reply is unrecognized.
type Category string

const (
	CategoryPolitics   Category = "politics"
	CategoryEconomy    Category = "economy"
	CategorySociety    Category = "society"
	CategoryTechnology Category = "technology"
	CategoryCulture    Category = "culture"
	CategorySports     Category = "sports"
	CategoryWorld      Category = "world"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryPolitics,
	CategoryEconomy,
	CategorySociety,
	CategoryTechnology,
	CategoryCulture,
	CategorySports,
	CategoryWorld,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps free text onto the closed set, falling back to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryOther
}
