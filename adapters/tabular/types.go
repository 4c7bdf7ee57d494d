package tabular

// RawRowData represents a row of raw tabular data as string key-value pairs
type RawRowData map[string]string

// Data represents the complete tabular dataset as read from disk, before any
// reshaping
type Data struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}
