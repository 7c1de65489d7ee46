package models

import "time"

// LabTest is a single bookable pathology test.
type LabTest struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description" json:"description"`
	Category       string    `bson:"category" json:"category"`
	Price          float64   `bson:"price" json:"price"`
	TurnaroundTime string    `bson:"turnaroundTime" json:"turnaroundTime"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	IsDeleted      bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ComboPackage bundles several tests at a (usually discounted) package price.
type ComboPackage struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Description        string    `bson:"description" json:"description"`
	Price              float64   `bson:"price" json:"price"`
	OriginalPrice      float64   `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	DiscountPercentage float64   `bson:"discountPercentage,omitempty" json:"discountPercentage,omitempty"`
	Tests              []string  `bson:"tests" json:"tests"`
	Image              string    `bson:"image,omitempty" json:"image,omitempty"`
	IsDeleted          bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LabTestInput is the admin payload for creating or updating a test.
type LabTestInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	TurnaroundTime string  `json:"turnaroundTime"`
	Image          string  `json:"image"`
}

// ComboPackageInput is the admin payload for creating or updating a combo package.
type ComboPackageInput struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	OriginalPrice      float64  `json:"originalPrice"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Tests              []string `json:"tests"`
	Image              string   `json:"image"`
}

// TestCategory is a browsable test grouping.
type TestCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogSnapshot is a read-only copy of the bookable catalog.
type CatalogSnapshot struct {
	Tests  []LabTest      `json:"tests"`
	Combos []ComboPackage `json:"combos"`
}

// Resolve looks up the selection in the catalog variant matching its kind.
func (c CatalogSnapshot) Resolve(sel Selection) (name string, price float64, ok bool) {
	if sel.ID == "" {
		return "", 0, false
	}
	switch sel.Kind {
	case SelectionTest:
		for _, t := range c.Tests {
			if t.ID == sel.ID {
				return t.Name, t.Price, true
			}
		}
	case SelectionCombo:
		for _, cp := range c.Combos {
			if cp.ID == sel.ID {
				return cp.Name, cp.Price, true
			}
		}
	}
	return "", 0, false
}
