// Package tabular reads registration source files (CSV or XLSX) into a
// uniform headers-plus-rows shape. It performs no numeric parsing; cells are
// handed downstream as raw strings.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"rinkmetrics/internal"
)

// Reader handles reading Excel and CSV files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewReader creates a new reader that handles both Excel and CSV files based
// on the file extension
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// Read reads the source file into structured form. A missing file is an
// error here; the caller decides whether that is fatal.
func (r *Reader) Read() (*Data, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads the first sheet of an Excel workbook
func (r *Reader) readExcel() (*Data, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	r.logger.Debug("[Reader] Read %d rows from sheet %s", len(rows), sheets[0])

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readCSV reads CSV data into structured format
func (r *Reader) readCSV() (*Data, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows with a stray column should be dropped downstream, not kill the load.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[Reader] Read %d rows from %s", len(rows), r.filePath)

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into the headers-plus-rows format.
// Short rows are padded with empty cells; fully empty rows are skipped.
func (r *Reader) processRows(rows [][]string) (*Data, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	data := &Data{
		Headers: headers,
		Rows:    make([]RawRowData, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		empty := true
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			if value != "" {
				empty = false
			}
			rowData[header] = value
		}
		if empty {
			continue
		}
		data.Rows = append(data.Rows, rowData)
	}

	return data, nil
}
