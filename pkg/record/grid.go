package record

import (
	"strings"

	"salesdesk/pkg/cell"
)

// FromGrid converts a raw value grid into records using row 0 as headers.
// String headers are trimmed; short rows are padded with "" and long rows
// truncated, so every record carries exactly the header key set.
func FromGrid(grid [][]interface{}) []Record {
	if len(grid) == 0 {
		return []Record{}
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		if s, ok := h.(string); ok {
			headers[i] = strings.TrimSpace(s)
			continue
		}
		headers[i] = cell.Of(h).String()
	}

	out := make([]Record, 0, len(grid)-1)
	for _, row := range grid[1:] {
		values := make([]cell.Value, len(headers))
		for i := range headers {
			if i < len(row) {
				values[i] = cell.Of(row[i])
			} else {
				values[i] = cell.TextValue("")
			}
		}
		out = append(out, New(headers, values))
	}
	return out
}
