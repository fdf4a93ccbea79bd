package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"contract-assistant/internal/models"
)

// ErrUnsupportedFormat is returned when no loader matches the file extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

const defaultPageNumber = 1

// page is one loaded page/segment of a document before chunking.
type page struct {
	Text   string
	Number int
}

// Options control how loaded pages are split into chunks.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}

// Parse loads a document by extension and splits every page into overlapping
// fixed-size chunks carrying (source file, page number, chunk index) metadata.
func Parse(filePath string, opts Options) ([]models.Chunk, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = models.DefaultChunkSize
	}
	if opts.ChunkOverlap <= 0 {
		opts.ChunkOverlap = models.DefaultChunkOverlap
	}

	pages, err := loadPages(filePath)
	if err != nil {
		return nil, err
	}

	var chunks []models.Chunk
	for _, pg := range pages {
		chunks = append(chunks, chunkPage(filePath, pg, opts)...)
	}
	return chunks, nil
}

func loadPages(filePath string) ([]page, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return loadPDF(filePath)
	case ".docx":
		return loadDOCX(filePath)
	case ".pptx":
		return loadPPTX(filePath)
	case ".xlsx":
		return loadXLSX(filePath)
	case ".ods":
		return loadODS(filePath)
	case ".txt", ".md":
		return loadText(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func loadPDF(filePath string) ([]page, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var pages []page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, page{Text: pageText, Number: i})
	}
	return pages, nil
}

func loadDOCX(filePath string) ([]page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc := r.Editable()
	content := doc.GetContent()
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	// DOCX has no page numbers
	return []page{{Text: content, Number: defaultPageNumber}}, nil
}

func loadPPTX(filePath string) ([]page, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []page
	slideNum := 0
	for _, file := range f.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		slideNum++
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		slideText := extractTextFromXML(string(data))
		if strings.TrimSpace(slideText) == "" {
			continue
		}
		// slides stand in for pages, 1-based
		pages = append(pages, page{Text: slideText, Number: slideNum})
	}
	return pages, nil
}

func loadXLSX(filePath string) ([]page, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var pages []page
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		// sheets stand in for pages, 1-based
		pages = append(pages, page{Text: text.String(), Number: sheetNum + 1})
	}
	return pages, nil
}

func loadODS(filePath string) ([]page, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []page
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, page{Text: text.String(), Number: sheetNum + 1})
	}
	return pages, nil
}

func loadText(filePath string) ([]page, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	return []page{{Text: string(data), Number: defaultPageNumber}}, nil
}

func extractTextFromXML(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		endIdx := strings.Index(part, "</a:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}
