package paperdoc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oncograph/paperqa/internal/core/domain"
)

func extractJSON(reader io.Reader) (*domain.PaperDocument, error) {
	var doc domain.PaperDocument
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode extraction json: %w", err)
	}
	return &doc, nil
}
