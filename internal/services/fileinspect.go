package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"slidedeck-backend/internal/models"
)

type FileInspectService struct{}

func NewFileInspectService() *FileInspectService {
	return &FileInspectService{}
}

type FileInfo struct {
	FileType  string `json:"file_type"`
	PageCount int    `json:"page_count,omitempty"`
	HasText   bool   `json:"has_text"`
}

// DetectFileType classifies an upload by extension. Anything that isn't a
// PDF is treated as PowerPoint, matching the upload contract.
func DetectFileType(filename string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		return models.FileTypePDF
	}
	return models.FileTypePPTX
}

// Inspect probes a stored upload. PDFs get a page count and a text-presence
// check so the agent request can be enriched; PPTX files are opaque here.
func (s *FileInspectService) Inspect(path, filename string) (*FileInfo, error) {
	info := &FileInfo{FileType: DetectFileType(filename)}
	if info.FileType != models.FileTypePDF {
		return info, nil
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	info.PageCount = reader.NumPage()
	for pageIndex := 1; pageIndex <= info.PageCount; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(content) != "" {
			info.HasText = true
			break
		}
	}

	return info, nil
}
