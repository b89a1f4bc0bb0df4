package parser

import (
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
)

// Parse turns header-plus-rows comma separated text into records.
//
// Lines end in "\n" or "\r\n". Headers and values are whitespace-trimmed and
// mapped by position; short rows leave trailing fields empty. Quoting is not
// interpreted, so a quoted value containing a comma is split like any other.
// Parse never fails: blank input or a header alone yields no records.
func Parse(text string) []lead.Record {
	text = strings.TrimSpace(text)
	if text == "" {
		return []lead.Record{}
	}
	lines := splitLines(text)
	table := make([][]string, len(lines))
	for i, l := range lines {
		table[i] = splitTrim(l)
	}
	return mapRows(table[0], table[1:])
}

// mapRows keys each row by the header at the same position.
func mapRows(headers []string, rows [][]string) []lead.Record {
	out := make([]lead.Record, 0, len(rows))
	for _, cols := range rows {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			v := ""
			if i < len(cols) {
				v = cols[i]
			}
			row[h] = v
		}
		out = append(out, lead.FromMap(row))
	}
	return out
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
