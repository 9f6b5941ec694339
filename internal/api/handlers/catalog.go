package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"storefront/internal/logger"
	"storefront/internal/services/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogHandler struct {
	db       *gorm.DB
	importer *catalog.Importer
	logger   *logger.Logger
}

func NewCatalogHandler(db *gorm.DB, logger *logger.Logger, mediaDir string) *CatalogHandler {
	return &CatalogHandler{
		db:       db,
		importer: catalog.NewImporter(db, logger, mediaDir),
		logger:   logger,
	}
}

// ImportUpload ingests a CSV or XLSX catalog file uploaded as
// multipart form data under the "file" field.
func (h *CatalogHandler) ImportUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file upload is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	var rows []catalog.Row
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		rows, err = catalog.ParseCSV(file)
	case ".xlsx":
		rows, err = catalog.ParseXLSX(file)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type, expected .csv or .xlsx"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.importer.Import(rows)
	c.JSON(http.StatusOK, gin.H{"data": report})
}

type importRowsRequest struct {
	Rows []map[string]interface{} `json:"rows" binding:"required"`
}

// ImportRows ingests the JSON payload the sheet upload script posts:
// one object per row, keyed by the header names.
func (h *CatalogHandler) ImportRows(c *gin.Context) {
	var req importRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := h.importer.Import(catalog.ParseJSONRows(req.Rows))
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// Export streams the catalog as an XLSX workbook with dropdowns bound
// to the current category and size tables.
func (h *CatalogHandler) Export(c *gin.Context) {
	workbook, err := catalog.BuildWorkbook(h.db)
	if err != nil {
		h.logger.Error("Failed to build export workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}
	defer workbook.Close()

	filename := "products-" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("Failed to stream export workbook: %v", err)
	}
}
