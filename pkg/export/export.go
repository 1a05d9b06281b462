package export

import (
	"fmt"
	"strings"
	"time"
)

// Format is a supported download format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a requested format. Empty input means CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Renderer dispatches a dataset to the exporter for the format.
type Renderer struct {
	csv *CSVExporter
	pdf *PDFExporter
	now func() time.Time
}

// NewRenderer constructs a renderer with both exporters.
func NewRenderer() *Renderer {
	return &Renderer{csv: NewCSVExporter(), pdf: NewPDFExporter(), now: time.Now}
}

// Render produces a named file. basename is suffixed with the date and the
// format extension.
func (r *Renderer) Render(format Format, data Dataset, title, basename string) (*File, error) {
	name := fmt.Sprintf("%s-%s.%s", basename, r.now().UTC().Format("20060102"), format)
	switch format {
	case FormatPDF:
		body, err := r.pdf.Render(data, title)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "application/pdf", Body: body}, nil
	case FormatCSV:
		body, err := r.csv.Render(data)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "text/csv", Body: body}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}
