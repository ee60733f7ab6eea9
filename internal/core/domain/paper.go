package domain

import (
	"strings"
	"time"
)

type PaperStatus string

const (
	StatusUploaded   PaperStatus = "uploaded"
	StatusProcessing PaperStatus = "processing"
	StatusLoaded     PaperStatus = "loaded"
	StatusFailed     PaperStatus = "failed"
)

// Paper tracks one uploaded source document through the ingestion pipeline.
type Paper struct {
	ID          string      `json:"id"`
	Filename    string      `json:"filename"`
	MimeType    string      `json:"mime_type"`
	StoragePath string      `json:"storage_path"`
	Status      PaperStatus `json:"status"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// PaperDocument is the extracted-paper representation the graph loader
// consumes, either parsed from an extraction JSON or synthesized from a PDF.
type PaperDocument struct {
	FilePath      string                  `json:"file_path"`
	FileSizeHuman string                  `json:"file_size_human"`
	PageCount     int                     `json:"page_count"`
	Metadata      PaperMetadata           `json:"metadata"`
	Sections      map[string]PaperSection `json:"Sections"`
}

type PaperMetadata struct {
	Author  string `json:"author"`
	Creator string `json:"creator"`
	Title   string `json:"title"`
}

// PaperSection carries a section's text and extracted entities. Extraction
// tools are inconsistent about key casing, so both spellings are accepted.
type PaperSection struct {
	Text        string         `json:"text"`
	TextUpper   string         `json:"Text"`
	Entities    map[string]any `json:"entities"`
	EntitiesAlt map[string]any `json:"Entities"`
}

// Body returns the section text, preferring the lowercase key.
func (s PaperSection) Body() string {
	if s.Text != "" {
		return s.Text
	}
	return s.TextUpper
}

// Entity returns the named entity value from whichever entity map carries it.
func (s PaperSection) Entity(key string) (any, bool) {
	if v, ok := s.Entities[key]; ok {
		return v, true
	}
	if v, ok := s.EntitiesAlt[key]; ok {
		return v, true
	}
	return nil, false
}

// EntityList returns the named entity as a string list. Scalar string values
// are comma-split, matching how extraction output stores list-ish fields.
func (s PaperSection) EntityList(key string) []string {
	v, ok := s.Entity(key)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				out = append(out, strings.TrimSpace(str))
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if strings.TrimSpace(item) != "" {
				out = append(out, strings.TrimSpace(item))
			}
		}
		return out
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}

// Section looks up a section by canonical name.
func (d *PaperDocument) Section(name string) (PaperSection, bool) {
	section, ok := d.Sections[name]
	return section, ok
}

// QuestionRecord is one audit log entry for an answered question.
type QuestionRecord struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Intent    Intent    `json:"intent"`
	RowCount  int       `json:"row_count"`
	TopScore  float64   `json:"top_score"`
	CreatedAt time.Time `json:"created_at"`
}
