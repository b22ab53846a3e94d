package preview

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/csvcheck/csvcheck/internal/domain"
	"golang.org/x/net/html/charset"
)

// maxWarnings caps the per-line warnings kept on a preview.
const maxWarnings = 20

// CSVPreviewer implements domain.Previewer. Quotes are read lazily and lines
// with an unexpected field count are skipped with a warning rather than
// failing the whole preview.
type CSVPreviewer struct{}

// New creates a CSVPreviewer.
func New() *CSVPreviewer { return &CSVPreviewer{} }

// Preview reads the header and counts data rows, keeping the first maxRows.
func (p *CSVPreviewer) Preview(data []byte, contentType string, maxRows int) (*domain.Preview, error) {
	text, err := toUTF8(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding file: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	pv := &domain.Preview{Columns: header}
	skipped := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}

		if len(record) != len(header) {
			line, _ := r.FieldPos(0)
			skipped++
			if len(pv.Warnings) < maxWarnings {
				pv.Warnings = append(pv.Warnings,
					fmt.Sprintf("line %d: expected %d fields, saw %d", line, len(header), len(record)))
			}
			continue
		}

		pv.TotalRows++
		if len(pv.Rows) < maxRows {
			pv.Rows = append(pv.Rows, record)
		}
	}

	if skipped > maxWarnings {
		pv.Warnings = append(pv.Warnings, fmt.Sprintf("%d more malformed lines skipped", skipped-maxWarnings))
	}

	return pv, nil
}

// toUTF8 returns data as UTF-8. Valid UTF-8 passes through; anything else is
// decoded using the declared or sniffed charset (typically windows-1252 exports).
func toUTF8(data []byte, contentType string) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data, nil
	}
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	return enc.NewDecoder().Bytes(data)
}

var _ domain.Previewer = (*CSVPreviewer)(nil)
