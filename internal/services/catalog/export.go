package catalog

import (
	"fmt"
	"strings"

	"storefront/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheet = "Products"

// dropdownRows is how far down the sheet carries data-validation rules,
// matching the 1000-row range the upload sheet uses.
const dropdownRows = 1000

// BuildWorkbook renders the current catalog as an XLSX workbook whose
// category, subcategory, sub-subcategory, boolean and size columns
// carry dropdowns sourced from the live tables, so the exported file
// can be edited and re-imported.
func BuildWorkbook(db *gorm.DB) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	var products []models.Product
	if err := db.Preload("Category").Preload("Subcategory").Preload("SubSubcategory").
		Preload("Sizes").Preload("Images").Find(&products).Error; err != nil {
		return nil, err
	}

	for i, product := range products {
		rowNum := i + 2
		values := []interface{}{
			product.Name,
			nameOf(product.Category),
			nameOf(product.Subcategory),
			nameOf(product.SubSubcategory),
			product.Description,
			product.MarketPrice,
			product.Price,
			product.Stock,
			boolCell(product.IsPopular),
			boolCell(product.IsFeatured),
			sizeNames(product.Sizes),
			product.ThumbnailImage,
			firstColor(product.Images),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := addDropdowns(f, db); err != nil {
		return nil, err
	}
	return f, nil
}

func addDropdowns(f *excelize.File, db *gorm.DB) error {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return err
	}
	categoryNames := make([]string, 0, len(categories))
	for _, c := range categories {
		categoryNames = append(categoryNames, c.Name)
	}

	var subcategories []models.Subcategory
	if err := db.Preload("Category").Find(&subcategories).Error; err != nil {
		return err
	}
	subcategoryNames := make([]string, 0, len(subcategories))
	for _, sc := range subcategories {
		parent := "Unknown"
		if sc.Category != nil {
			parent = sc.Category.Name
		}
		subcategoryNames = append(subcategoryNames, fmt.Sprintf("%s (%s)", sc.Name, parent))
	}

	var subsubcategories []models.SubSubcategory
	if err := db.Preload("Subcategory").Find(&subsubcategories).Error; err != nil {
		return err
	}
	subsubcategoryNames := make([]string, 0, len(subsubcategories))
	for _, ssc := range subsubcategories {
		parent := "Unknown"
		if ssc.Subcategory != nil {
			parent = ssc.Subcategory.Name
		}
		subsubcategoryNames = append(subsubcategoryNames, fmt.Sprintf("%s (%s)", ssc.Name, parent))
	}

	var sizes []models.Size
	if err := db.Find(&sizes).Error; err != nil {
		return err
	}
	szNames := make([]string, 0, len(sizes))
	for _, sz := range sizes {
		szNames = append(szNames, sz.Name)
	}

	dropdowns := []struct {
		column string
		values []string
	}{
		{"B", categoryNames},
		{"C", subcategoryNames},
		{"D", subsubcategoryNames},
		{"I", []string{"TRUE", "FALSE"}},
		{"J", []string{"TRUE", "FALSE"}},
		{"K", szNames},
	}
	for _, d := range dropdowns {
		if len(d.values) == 0 {
			continue
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s2:%s%d", d.column, d.column, dropdownRows+1)
		if err := dv.SetDropList(d.values); err != nil {
			return err
		}
		if err := f.AddDataValidation(exportSheet, dv); err != nil {
			return err
		}
	}
	return nil
}

func nameOf(v interface{}) string {
	switch val := v.(type) {
	case *models.Category:
		if val != nil {
			return val.Name
		}
	case *models.Subcategory:
		if val != nil {
			return val.Name
		}
	case *models.SubSubcategory:
		if val != nil {
			return val.Name
		}
	}
	return ""
}

func boolCell(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func sizeNames(sizes []models.Size) string {
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func firstColor(images []models.ProductImage) string {
	for _, img := range images {
		if img.Color != "" {
			return img.Color
		}
	}
	return ""
}
