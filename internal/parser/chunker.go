package parser

import (
	"strings"

	"contract-assistant/internal/models"
)

// chunkContent splits content into chunks of at most maxChars characters with
// overlapChars characters of overlap between consecutive chunks. Boundary
// chunks may be shorter.
func chunkContent(content string, maxChars, overlapChars int) []string {
	if maxChars <= 0 {
		return nil
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}

	content = strings.TrimSpace(content)
	contentLen := len(content)
	if contentLen == 0 {
		return nil
	}
	if contentLen <= maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	for start < contentLen {
		end := min(start+maxChars, contentLen)

		// Prefer a clean break within the last 10% of the window
		if end < contentLen {
			lookBack := min(maxChars/10, end-start)
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(content[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		start += maxChars - overlapChars
		if start >= contentLen {
			break
		}
	}

	return chunks
}

// chunkPage turns one loaded page into chunks with provenance metadata.
// Chunk indexes are 1-based within the page.
func chunkPage(sourceFile string, pg page, opts Options) []models.Chunk {
	var chunks []models.Chunk
	for i, text := range chunkContent(pg.Text, opts.ChunkSize, opts.ChunkOverlap) {
		chunks = append(chunks, models.Chunk{
			Content:    text,
			SourceFile: sourceFile,
			PageNumber: pg.Number,
			ChunkID:    i + 1,
		})
	}
	return chunks
}
