package catalog

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"storefront/internal/logger"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Row is one catalog line from a spreadsheet or sheet-API payload. A
// row without a product name continues the previous product and only
// contributes a color/image variant.
type Row struct {
	Name           string
	Category       string
	Subcategory    string
	SubSubcategory string
	Description    string
	MarketPrice    float64
	Price          float64
	Stock          int
	IsPopular      bool
	IsFeatured     bool
	Sizes          string
	Image          string
	Color          string
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type Report struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

type Importer struct {
	db       *gorm.DB
	logger   *logger.Logger
	client   *http.Client
	mediaDir string
}

func NewImporter(db *gorm.DB, logger *logger.Logger, mediaDir string) *Importer {
	return &Importer{
		db:     db,
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		mediaDir: mediaDir,
	}
}

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// normalizeName strips the trailing parent annotation sheet dropdowns
// carry, e.g. "Shoes (Men)" -> "Shoes".
func normalizeName(name string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(name, ""))
}

// Import processes rows sequentially. Per-row failures are recorded and
// skipped; a bad row never aborts the batch.
func (im *Importer) Import(rows []Row) *Report {
	report := &Report{}
	var lastProduct *models.Product

	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			if lastProduct == nil {
				continue
			}
			if err := im.attachVariant(lastProduct, row); err != nil {
				report.Failed++
				report.Errors = append(report.Errors, RowError{Row: i + 1, Message: err.Error()})
			}
			continue
		}

		product, created, err := im.importProduct(row)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		if !created {
			report.Skipped++
			continue
		}
		report.Created++
		lastProduct = product
	}

	return report
}

func (im *Importer) importProduct(row Row) (*models.Product, bool, error) {
	categoryID, subcategoryID, subsubcategoryID, err := im.resolveHierarchy(row)
	if err != nil {
		return nil, false, err
	}

	// Re-uploading a sheet must not duplicate products: the (name,
	// lowest category) pair is the identity.
	var existing models.Product
	query := im.db.Where("name = ?", strings.TrimSpace(row.Name))
	if subsubcategoryID != nil {
		query = query.Where("sub_subcategory_id = ?", *subsubcategoryID)
	}
	if err := query.First(&existing).Error; err == nil {
		return &existing, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	product := &models.Product{
		Name:             strings.TrimSpace(row.Name),
		Description:      row.Description,
		MarketPrice:      row.MarketPrice,
		Price:            row.Price,
		Stock:            row.Stock,
		CategoryID:       categoryID,
		SubcategoryID:    subcategoryID,
		SubSubcategoryID: subsubcategoryID,
		IsPopular:        row.IsPopular,
		IsFeatured:       row.IsFeatured,
		IsActive:         true,
	}

	if err := im.db.Create(product).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create product: %w", err)
	}

	if err := im.attachSizes(product, row.Sizes); err != nil {
		return nil, false, err
	}

	if row.Image != "" {
		saved, err := im.fetchImage(row.Image)
		if err != nil {
			// Products stay without a thumbnail when the remote fetch
			// fails; the sheet can be re-uploaded later.
			im.logger.Warn("Failed to fetch image for %s: %v", product.Name, err)
		} else {
			product.ThumbnailImage = saved
			im.db.Model(product).Update("thumbnail_image", saved)
			im.db.Create(&models.ProductImage{
				ProductID: product.ID,
				Name:      product.Name,
				Color:     row.Color,
				Stock:     row.Stock,
				Image:     saved,
			})
		}
	}

	return product, true, nil
}

// attachVariant handles a continuation row: a color/image entry for the
// most recently created product.
func (im *Importer) attachVariant(product *models.Product, row Row) error {
	image := &models.ProductImage{
		ProductID: product.ID,
		Name:      product.Name,
		Color:     row.Color,
		Stock:     row.Stock,
	}
	if row.Image != "" {
		saved, err := im.fetchImage(row.Image)
		if err != nil {
			im.logger.Warn("Failed to fetch variant image for %s: %v", product.Name, err)
		} else {
			image.Image = saved
		}
	}
	return im.db.Create(image).Error
}

func (im *Importer) resolveHierarchy(row Row) (*uint, *uint, *uint, error) {
	var categoryID, subcategoryID, subsubcategoryID *uint

	categoryName := normalizeName(row.Category)
	if categoryName != "" {
		var category models.Category
		err := im.db.Where("name = ?", categoryName).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = models.Category{Name: categoryName}
			err = im.db.Create(&category).Error
		}
		if err != nil {
			return nil, nil, nil, err
		}
		categoryID = &category.ID
	}

	subcategoryName := normalizeName(row.Subcategory)
	if subcategoryName != "" && categoryID != nil {
		var subcategory models.Subcategory
		err := im.db.Where("name = ? AND category_id = ?", subcategoryName, *categoryID).
			First(&subcategory).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			subcategory = models.Subcategory{Name: subcategoryName, CategoryID: *categoryID}
			err = im.db.Create(&subcategory).Error
		}
		if err != nil {
			return nil, nil, nil, err
		}
		subcategoryID = &subcategory.ID
	}

	subsubcategoryName := normalizeName(row.SubSubcategory)
	if subsubcategoryName != "" && subcategoryID != nil {
		var subsubcategory models.SubSubcategory
		err := im.db.Where("name = ? AND subcategory_id = ?", subsubcategoryName, *subcategoryID).
			First(&subsubcategory).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			subsubcategory = models.SubSubcategory{Name: subsubcategoryName, SubcategoryID: *subcategoryID}
			err = im.db.Create(&subsubcategory).Error
		}
		if err != nil {
			return nil, nil, nil, err
		}
		subsubcategoryID = &subsubcategory.ID
	}

	return categoryID, subcategoryID, subsubcategoryID, nil
}

func (im *Importer) attachSizes(product *models.Product, sizes string) error {
	for _, name := range strings.Split(sizes, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var size models.Size
		err := im.db.Where("name = ?", name).First(&size).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			size = models.Size{Name: name}
			err = im.db.Create(&size).Error
		}
		if err != nil {
			return err
		}
		if err := im.db.Model(product).Association("Sizes").Append(&size); err != nil {
			return err
		}
	}
	return nil
}

// fetchImage downloads a remote thumbnail into the media directory and
// returns the stored relative path.
func (im *Importer) fetchImage(url string) (string, error) {
	resp, err := im.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch failed: %d", resp.StatusCode)
	}

	ext := path.Ext(url)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	rel := filepath.Join("products", uuid.New().String()+ext)
	full := filepath.Join(im.mediaDir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return rel, nil
}
