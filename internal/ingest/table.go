package ingest

import "strings"

// previewRows is how many data rows Table.Preview retains.
const previewRows = 5

// Table is the result of parsing one raw export blob. The first non-blank
// line becomes the header row; everything else becomes data rows.
type Table struct {
	Headers []string
	Rows    [][]string
	Preview [][]string
}

// Empty reports whether the table carries no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Parse splits a raw delimited text blob into headers and rows. The format
// is never validated beyond "non-empty line -> row of cells": a byte-order
// marker is stripped, any newline style is accepted, quoted fields may
// contain commas and doubled quotes, and each cell is whitespace-trimmed.
// Rows whose cells are all empty are discarded. Empty input yields an empty
// table, not an error.
func Parse(raw string) Table {
	raw = strings.TrimPrefix(raw, "\uFEFF")

	var lines []string
	for _, line := range strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Table{}
	}

	table := Table{Headers: parseLine(lines[0])}
	for _, line := range lines[1:] {
		row := parseLine(line)
		if allEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	n := len(table.Rows)
	if n > previewRows {
		n = previewRows
	}
	table.Preview = table.Rows[:n]
	return table
}

// parseLine splits one physical line into cells. A quote toggles quoting; a
// doubled quote inside a quoted field is a literal quote; unquoted commas
// separate fields.
func parseLine(line string) []string {
	var cells []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(ch)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
