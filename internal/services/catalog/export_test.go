package catalog

import (
	"testing"

	"storefront/internal/models"
)

func TestBuildWorkbook(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	report := importer.Import([]Row{{
		Name:           "Leather Boot",
		Category:       "Men",
		Subcategory:    "Shoes",
		SubSubcategory: "Boots",
		Description:    "Sturdy",
		MarketPrice:    120,
		Price:          99.5,
		Stock:          12,
		IsPopular:      true,
		Sizes:          "41, 42",
		Color:          "Brown",
	}})
	if report.Created != 1 {
		t.Fatalf("report = %+v, want 1 created", report)
	}
	variant := models.ProductImage{ProductID: 1, Color: "Brown", Stock: 3}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("failed to create variant: %v", err)
	}

	f, err := BuildWorkbook(db)
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Products" {
		t.Fatalf("sheets = %v, want [Products]", sheets)
	}

	headerChecks := map[string]string{
		"A1": "name",
		"B1": "category",
		"D1": "subsubcategory",
		"I1": "is_popular",
		"K1": "sizes",
		"M1": "color",
	}
	for cell, want := range headerChecks {
		got, err := f.GetCellValue("Products", cell)
		if err != nil {
			t.Fatalf("failed to read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}

	rowChecks := map[string]string{
		"A2": "Leather Boot",
		"B2": "Men",
		"C2": "Shoes",
		"D2": "Boots",
		"H2": "12",
		"I2": "TRUE",
		"J2": "FALSE",
		"K2": "41, 42",
		"M2": "Brown",
	}
	for cell, want := range rowChecks {
		got, err := f.GetCellValue("Products", cell)
		if err != nil {
			t.Fatalf("failed to read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	validations, err := f.GetDataValidations("Products")
	if err != nil {
		t.Fatalf("failed to read data validations: %v", err)
	}
	if len(validations) != 6 {
		t.Errorf("data validations = %d, want 6", len(validations))
	}
}

func TestBuildWorkbookEmptyCatalogSkipsEmptyDropdowns(t *testing.T) {
	db := setupTestDB(t)

	f, err := BuildWorkbook(db)
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}
	defer f.Close()

	// Only the two boolean columns have values to offer.
	validations, err := f.GetDataValidations("Products")
	if err != nil {
		t.Fatalf("failed to read data validations: %v", err)
	}
	if len(validations) != 2 {
		t.Errorf("data validations = %d, want 2", len(validations))
	}
}
