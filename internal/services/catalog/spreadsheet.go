package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Headers is the canonical column order shared by import and export.
var Headers = []string{
	"name", "category", "subcategory", "subsubcategory", "description",
	"market_price", "price", "stock", "is_popular", "is_featured",
	"sizes", "image", "color",
}

// ParseCSV reads delimited catalog rows. The first record must be the
// header row; columns are matched by header name, not position.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty file")
	}
	return rowsFromRecords(records), nil
}

// ParseXLSX reads catalog rows from the first sheet of a workbook.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty sheet")
	}
	return rowsFromRecords(records), nil
}

// ParseJSONRows converts a sheet-API payload (one object per row, keyed
// by header) into catalog rows. Values arrive as strings, numbers or
// booleans depending on what the sheet cell held.
func ParseJSONRows(payload []map[string]interface{}) []Row {
	rows := make([]Row, 0, len(payload))
	for _, obj := range payload {
		rows = append(rows, Row{
			Name:           asString(obj["name"]),
			Category:       asString(obj["category"]),
			Subcategory:    asString(obj["subcategory"]),
			SubSubcategory: asString(obj["subsubcategory"]),
			Description:    asString(obj["description"]),
			MarketPrice:    asFloat(obj["market_price"]),
			Price:          asFloat(obj["price"]),
			Stock:          int(asFloat(obj["stock"])),
			IsPopular:      asBool(obj["is_popular"]),
			IsFeatured:     asBool(obj["is_featured"]),
			Sizes:          asString(obj["sizes"]),
			Image:          asString(obj["image"]),
			Color:          asString(obj["color"]),
		})
	}
	return rows
}

func rowsFromRecords(records [][]string) []Row {
	header := map[string]int{}
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(record []string, name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Name:           cell(record, "name"),
			Category:       cell(record, "category"),
			Subcategory:    cell(record, "subcategory"),
			SubSubcategory: cell(record, "subsubcategory"),
			Description:    cell(record, "description"),
			MarketPrice:    parseFloat(cell(record, "market_price")),
			Price:          parseFloat(cell(record, "price")),
			Stock:          parseInt(cell(record, "stock")),
			IsPopular:      parseBool(cell(record, "is_popular")),
			IsFeatured:     parseBool(cell(record, "is_featured")),
			Sizes:          cell(record, "sizes"),
			Image:          cell(record, "image"),
			Color:          cell(record, "color"),
		})
	}
	return rows
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		return parseFloat(val)
	default:
		return 0
	}
}

func asBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return parseBool(val)
	default:
		return false
	}
}
