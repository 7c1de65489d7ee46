package catalog

import (
	"context"
	"fmt"
	"strings"

	"labbook/models"

	"go.uber.org/zap"
)

func validateTestInput(in *models.LabTestInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Name == "" {
		return newInputError("name", "Name is required")
	}
	if in.Price < 0 {
		return newInputError("price", "Price cannot be negative")
	}
	if in.Category != "" && !knownCategory(in.Category) {
		return newInputError("category", "Unknown category "+in.Category)
	}
	return nil
}

func validateComboInput(in *models.ComboPackageInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return newInputError("name", "Name is required")
	}
	if in.Price < 0 {
		return newInputError("price", "Price cannot be negative")
	}
	if in.OriginalPrice < 0 {
		return newInputError("originalPrice", "Original price cannot be negative")
	}
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return newInputError("discountPercentage", "Discount must be between 0 and 100")
	}
	return nil
}

func (s *DefaultCatalogService) CreateTest(ctx context.Context, in models.LabTestInput) (*models.LabTest, error) {
	if err := validateTestInput(&in); err != nil {
		return nil, err
	}
	test := &models.LabTest{
		Name:           in.Name,
		Description:    in.Description,
		Category:       in.Category,
		Price:          in.Price,
		TurnaroundTime: in.TurnaroundTime,
		Image:          in.Image,
	}
	if err := s.Repo.CreateTest(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}
	s.invalidate(ctx)
	s.Logger.Info("lab test created", zap.String("testID", test.ID), zap.String("name", test.Name))
	return test, nil
}

func (s *DefaultCatalogService) UpdateTest(ctx context.Context, id string, in models.LabTestInput) (*models.LabTest, error) {
	if err := validateTestInput(&in); err != nil {
		return nil, err
	}
	err := s.Repo.UpdateTest(ctx, id, map[string]interface{}{
		"name":           in.Name,
		"description":    in.Description,
		"category":       in.Category,
		"price":          in.Price,
		"turnaroundTime": in.TurnaroundTime,
		"image":          in.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update test %s: %w", id, err)
	}
	s.invalidate(ctx)
	return s.GetTest(ctx, id)
}

func (s *DefaultCatalogService) CreateCombo(ctx context.Context, in models.ComboPackageInput) (*models.ComboPackage, error) {
	if err := validateComboInput(&in); err != nil {
		return nil, err
	}
	combo := &models.ComboPackage{
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		OriginalPrice:      in.OriginalPrice,
		DiscountPercentage: in.DiscountPercentage,
		Tests:              in.Tests,
		Image:              in.Image,
	}
	if err := s.Repo.CreateCombo(ctx, combo); err != nil {
		return nil, fmt.Errorf("failed to create combo package: %w", err)
	}
	s.invalidate(ctx)
	s.Logger.Info("combo package created", zap.String("comboID", combo.ID), zap.String("name", combo.Name))
	return combo, nil
}

func (s *DefaultCatalogService) UpdateCombo(ctx context.Context, id string, in models.ComboPackageInput) (*models.ComboPackage, error) {
	if err := validateComboInput(&in); err != nil {
		return nil, err
	}
	tests := in.Tests
	if tests == nil {
		tests = []string{}
	}
	err := s.Repo.UpdateCombo(ctx, id, map[string]interface{}{
		"name":               in.Name,
		"description":        in.Description,
		"price":              in.Price,
		"originalPrice":      in.OriginalPrice,
		"discountPercentage": in.DiscountPercentage,
		"tests":              tests,
		"image":              in.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update combo package %s: %w", id, err)
	}
	s.invalidate(ctx)
	return s.GetCombo(ctx, id)
}
