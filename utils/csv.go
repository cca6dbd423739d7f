package utils

import "strings"

// ToCSV renders rows in the backup file format: a plain header row followed
// by data rows in which every value is double-quote-wrapped with embedded
// quotes doubled. No rows yields an empty string, header included.
func ToCSV(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		b.WriteByte('\n')
		for i, value := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(value, `"`, `""`))
			b.WriteByte('"')
		}
	}

	return b.String()
}
