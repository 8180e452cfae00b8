package demanda

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrNothingToExport is returned when an export has no rows.
var ErrNothingToExport = errors.New("nenhum dado para exportar")

// Column describes one CSV column: a header label and a row formatter.
type Column[T any] struct {
	Label string
	Value func(T) string
}

// BuildCSV renders rows through the column descriptors. Values containing
// the delimiter, a quote or a newline are quoted, with inner quotes
// doubled; everything else is emitted bare. No trailing newline.
func BuildCSV[T any](rows []T, cols []Column[T], delimiter rune) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}
	sep := string(delimiter)

	var b strings.Builder
	for i, col := range cols {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(escapeCSV(col.Label, sep))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, col := range cols {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(escapeCSV(col.Value(row), sep))
		}
	}
	return b.String(), nil
}

func escapeCSV(value, sep string) string {
	if strings.Contains(value, sep) || strings.Contains(value, `"`) || strings.Contains(value, "\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// EncodeWindows1252 re-encodes UTF-8 CSV text for spreadsheet tools that
// still assume the legacy Brazilian codepage. Unsupported runes become
// the replacement byte rather than failing the export.
func EncodeWindows1252(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
