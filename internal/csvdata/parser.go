package csvdata

import (
	"fmt"
	"os"
	"strings"

	"selectly/internal/domain"
)

// Parse turns raw CSV text into supplier records. The first line is the
// header; every following non-empty line becomes one record, in order.
// Splitting is a plain comma split with per-value whitespace trimming.
// There is no quoting or escaping. Short rows leave their trailing fields
// absent; downstream code tolerates missing fields via the lenient-zero
// policy.
func Parse(text string) []domain.Supplier {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	headers := splitRow(lines[0])
	suppliers := make([]domain.Supplier, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitRow(line)
		rec := make(domain.Supplier, len(headers))
		for i, h := range headers {
			if i < len(values) {
				rec[h] = values[i]
			}
		}
		suppliers = append(suppliers, rec)
	}
	return suppliers
}

// ParseFile reads and parses a CSV file from disk.
func ParseFile(path string) ([]domain.Supplier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return Parse(string(data)), nil
}

func splitRow(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
