package catalog

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestImporter(t *testing.T, db *gorm.DB) *Importer {
	t.Helper()
	return NewImporter(db, logger.New("error"), t.TempDir())
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Shoes (Men)":     "Shoes",
		"Shoes":           "Shoes",
		"  Bags (Women) ": "Bags",
		"":                "",
	}
	for in, want := range cases {
		if got := normalizeName(in); got != want {
			t.Errorf("normalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportCreatesHierarchyAndProduct(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	report := importer.Import([]Row{{
		Name:           "Leather Boot",
		Category:       "Men",
		Subcategory:    "Shoes (Men)",
		SubSubcategory: "Boots (Shoes)",
		Description:    "Sturdy",
		MarketPrice:    120,
		Price:          99.5,
		Stock:          12,
		IsPopular:      true,
		Sizes:          "41, 42, 43",
	}})

	if report.Created != 1 || report.Failed != 0 || report.Skipped != 0 {
		t.Fatalf("report = %+v, want 1 created", report)
	}

	var product models.Product
	err := db.Preload("Sizes").Preload("Category").Preload("Subcategory").
		Preload("SubSubcategory").First(&product, "name = ?", "Leather Boot").Error
	if err != nil {
		t.Fatalf("failed to load product: %v", err)
	}

	if product.Category == nil || product.Category.Name != "Men" {
		t.Errorf("category = %+v, want Men", product.Category)
	}
	if product.Subcategory == nil || product.Subcategory.Name != "Shoes" {
		t.Errorf("subcategory = %+v, want Shoes (annotation stripped)", product.Subcategory)
	}
	if product.SubSubcategory == nil || product.SubSubcategory.Name != "Boots" {
		t.Errorf("subsubcategory = %+v, want Boots", product.SubSubcategory)
	}
	if len(product.Sizes) != 3 {
		t.Errorf("sizes = %d, want 3", len(product.Sizes))
	}
	if product.Stock != 12 || product.Price != 99.5 || !product.IsPopular {
		t.Errorf("product fields = %+v", product)
	}
}

func TestImportReusesExistingHierarchy(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	rows := []Row{
		{Name: "Boot A", Category: "Men", Subcategory: "Shoes", SubSubcategory: "Boots"},
		{Name: "Boot B", Category: "Men", Subcategory: "Shoes (Men)", SubSubcategory: "Boots (Shoes)"},
	}
	report := importer.Import(rows)
	if report.Created != 2 {
		t.Fatalf("report = %+v, want 2 created", report)
	}

	var categoryCount, subcategoryCount, subsubcategoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.Subcategory{}).Count(&subcategoryCount)
	db.Model(&models.SubSubcategory{}).Count(&subsubcategoryCount)
	if categoryCount != 1 || subcategoryCount != 1 || subsubcategoryCount != 1 {
		t.Errorf("hierarchy counts = %d/%d/%d, want 1/1/1", categoryCount, subcategoryCount, subsubcategoryCount)
	}
}

func TestImportSkipsDuplicateNameAndLowestCategory(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	row := Row{Name: "Leather Boot", Category: "Men", Subcategory: "Shoes", SubSubcategory: "Boots"}

	first := importer.Import([]Row{row})
	second := importer.Import([]Row{row})

	if first.Created != 1 {
		t.Errorf("first import = %+v, want 1 created", first)
	}
	if second.Created != 0 || second.Skipped != 1 {
		t.Errorf("second import = %+v, want 1 skipped", second)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("product count = %d, want 1", count)
	}
}

func TestImportVariantContinuationRow(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	rows := []Row{
		{Name: "Leather Boot", Category: "Men", Stock: 10},
		{Color: "Blue", Stock: 4},
		{Color: "Black", Stock: 2},
	}
	report := importer.Import(rows)
	if report.Created != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 1 created", report)
	}

	var product models.Product
	if err := db.Preload("Images").First(&product, "name = ?", "Leather Boot").Error; err != nil {
		t.Fatalf("failed to load product: %v", err)
	}
	if len(product.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(product.Images))
	}
	if product.Images[0].Color != "Blue" || product.Images[0].Stock != 4 {
		t.Errorf("first variant = %+v, want Blue/4", product.Images[0])
	}
}

func TestImportVariantRowWithoutPriorProductIgnored(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	report := importer.Import([]Row{{Color: "Blue", Stock: 4}})
	if report.Created != 0 || report.Failed != 0 {
		t.Errorf("report = %+v, want nothing recorded", report)
	}

	var count int64
	db.Model(&models.ProductImage{}).Count(&count)
	if count != 0 {
		t.Errorf("image count = %d, want 0", count)
	}
}

func TestImportImageFetchFailureKeepsProduct(t *testing.T) {
	db := setupTestDB(t)
	importer := newTestImporter(t, db)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	report := importer.Import([]Row{{
		Name:     "Leather Boot",
		Category: "Men",
		Image:    server.URL + "/boot.jpg",
	}})
	if report.Created != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want product kept despite fetch failure", report)
	}

	var product models.Product
	if err := db.First(&product, "name = ?", "Leather Boot").Error; err != nil {
		t.Fatalf("failed to load product: %v", err)
	}
	if product.ThumbnailImage != "" {
		t.Errorf("thumbnail = %q, want empty", product.ThumbnailImage)
	}
}

func TestImportDownloadsThumbnail(t *testing.T) {
	db := setupTestDB(t)
	mediaDir := t.TempDir()
	importer := NewImporter(db, logger.New("error"), mediaDir)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake-image-bytes"))
	}))
	defer server.Close()

	report := importer.Import([]Row{{
		Name:     "Leather Boot",
		Category: "Men",
		Image:    server.URL + "/boot.jpg",
		Color:    "Brown",
		Stock:    3,
	}})
	if report.Created != 1 {
		t.Fatalf("report = %+v, want 1 created", report)
	}

	var product models.Product
	if err := db.Preload("Images").First(&product, "name = ?", "Leather Boot").Error; err != nil {
		t.Fatalf("failed to load product: %v", err)
	}
	if product.ThumbnailImage == "" {
		t.Fatal("thumbnail path not recorded")
	}
	if _, err := os.Stat(filepath.Join(mediaDir, product.ThumbnailImage)); err != nil {
		t.Errorf("saved image missing: %v", err)
	}
	if len(product.Images) != 1 || product.Images[0].Color != "Brown" {
		t.Errorf("images = %+v, want one Brown variant", product.Images)
	}
}
