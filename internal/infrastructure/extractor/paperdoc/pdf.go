package paperdoc

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// Canonical section headings in reading order. Splitting scans the plain
// text for these and cuts at each heading that is actually present.
var sectionHeadings = []string{
	"Abstract",
	"Introduction",
	"Methodology",
	"Results",
	"Conclusion",
}

func extractPDF(reader io.Reader, paper *domain.Paper) (*domain.PaperDocument, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf upload: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse pdf", err)
	}

	textReader, err := pdfReader.GetPlainText()
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract pdf text", err)
	}
	text, err := io.ReadAll(textReader)
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}

	info := pdfReader.Trailer().Key("Info")
	doc := &domain.PaperDocument{
		FilePath:      paper.Filename,
		FileSizeHuman: humanSize(len(raw)),
		PageCount:     pdfReader.NumPage(),
		Metadata: domain.PaperMetadata{
			Author:  info.Key("Author").Text(),
			Creator: info.Key("Creator").Text(),
			Title:   info.Key("Title").Text(),
		},
		Sections: splitSections(string(text)),
	}
	return doc, nil
}

type headingMark struct {
	name  string
	start int
	body  int
}

// splitSections cuts the plain text at each known heading. Text before the
// first heading is folded into the Abstract so no content is lost.
func splitSections(text string) map[string]domain.PaperSection {
	lower := strings.ToLower(text)

	marks := make([]headingMark, 0, len(sectionHeadings))
	searchFrom := 0
	for _, name := range sectionHeadings {
		idx := strings.Index(lower[searchFrom:], strings.ToLower(name))
		if idx < 0 {
			continue
		}
		start := searchFrom + idx
		marks = append(marks, headingMark{name: name, start: start, body: start + len(name)})
		searchFrom = start + len(name)
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].start < marks[j].start })

	sections := make(map[string]domain.PaperSection, len(marks))
	for i, mark := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		body := strings.TrimSpace(text[mark.body:end])
		if mark.name == sectionHeadings[0] && mark.start > 0 {
			if lead := strings.TrimSpace(text[:mark.start]); lead != "" {
				body = lead + "\n" + body
			}
		}
		if body == "" {
			continue
		}
		sections[mark.name] = domain.PaperSection{Text: body}
	}
	return sections
}

func humanSize(size int) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := int64(size) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
