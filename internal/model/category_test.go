package model

import "testing"

func TestIsDefaultCategory(t *testing.T) {
	for _, c := range DefaultCategories {
		if !IsDefaultCategory(c) {
			t.Errorf("IsDefaultCategory(%q) = false", c)
		}
	}
	for _, c := range []string{"", "food", "FOOD", "Groceries"} {
		if IsDefaultCategory(c) {
			t.Errorf("IsDefaultCategory(%q) = true, want exact case-sensitive match only", c)
		}
	}
}
