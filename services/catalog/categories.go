package catalog

import "labbook/models"

var categories = []models.TestCategory{
	{ID: "all", Name: "All Tests"},
	{ID: "blood", Name: "Blood Tests"},
	{ID: "heart", Name: "Heart Health"},
	{ID: "brain", Name: "Brain & Nerves"},
	{ID: "stomach", Name: "Digestive Health"},
	{ID: "diabetes", Name: "Diabetes"},
	{ID: "bone", Name: "Bone Health"},
}

// Categories returns the browsable test categories, "all" first.
func (s *DefaultCatalogService) Categories() []models.TestCategory {
	out := make([]models.TestCategory, len(categories))
	copy(out, categories)
	return out
}

func knownCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id && id != "all" {
			return true
		}
	}
	return false
}
