package application

import "github.com/csvcheck/csvcheck/internal/domain"

// PreviewService summarizes uploads before they are sent.
type PreviewService struct {
	previewer domain.Previewer
	rows      int
}

func NewPreviewService(previewer domain.Previewer, rows int) *PreviewService {
	return &PreviewService{previewer: previewer, rows: rows}
}

// Preview returns the header, the first rows and the total row count.
// A failure here never blocks validation; callers report it and continue.
func (s *PreviewService) Preview(upload domain.Upload) (*domain.Preview, error) {
	return s.previewer.Preview(upload.Data, upload.ContentType, s.rows)
}
