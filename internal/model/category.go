package model

// DefaultCategories is the fixed, ordered set of expense categories offered
// to every user. Category matching is case-sensitive and exact.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Health",
	"Entertainment",
	"Shopping",
	"Other",
}

// IsDefaultCategory reports whether name is one of DefaultCategories.
func IsDefaultCategory(name string) bool {
	for _, c := range DefaultCategories {
		if c == name {
			return true
		}
	}
	return false
}
