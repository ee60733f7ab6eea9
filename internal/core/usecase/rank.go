package usecase

import (
	"sort"
	"strings"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// DefaultTopN is how many ranked rows an answer keeps when the caller does
// not ask for a specific limit.
const DefaultTopN = 8

// Scoring weights. Together with the 0.6 entity cap these are part of the
// behavioral contract and are never configurable at runtime.
const (
	lexicalWeight   = 0.5
	entityWeight    = 0.3
	proximityWeight = 0.2
	entityBoostStep = 0.2
	entityBoostCap  = 0.6
	proximityBonus  = 0.2
)

// proximityTags is the allow-list of tags considered domain-relevant enough
// for the proximity bonus. BestModel and Sections stay outside it.
var proximityTags = map[string]struct{}{
	TagSymptoms:             {},
	TagRiskFactors:          {},
	TagDiagnosticTechniques: {},
	TagCancerTypes:          {},
	TagDataset:              {},
	TagResults:              {},
	TagConclusion:           {},
}

// ScoreRows scores each row against the question and returns them sorted by
// descending score. Rows with equal scores keep their input order. The input
// rows are never mutated; every scored row is a shallow copy carrying
// FieldScore and FieldTag.
func ScoreRows(question, tag string, rows []domain.Row, entities domain.EntitySet) []domain.Row {
	scored := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		text := rowText(row)
		lexical := LexicalOverlapScore(question, text)
		entity := EntityMatchBoost(text, entities)
		proximity := 0.0
		if _, ok := proximityTags[tag]; ok {
			proximity = proximityBonus
		}

		out := row.Clone()
		out[domain.FieldScore] = lexicalWeight*lexical + entityWeight*entity + proximityWeight*proximity
		out[domain.FieldTag] = tag
		scored = append(scored, out)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})
	return scored
}

// SelectTopN truncates a scored list to its first n rows. n <= 0 falls back
// to DefaultTopN.
func SelectTopN(scored []domain.Row, n int) []domain.Row {
	if n <= 0 {
		n = DefaultTopN
	}
	if len(scored) <= n {
		return scored
	}
	return scored[:n]
}

// LexicalOverlapScore is the fraction of the question's tokens also present
// in the candidate text. Either side tokenizing to nothing short-circuits to
// zero before the division guard ever applies.
func LexicalOverlapScore(question, text string) float64 {
	questionTokens := toTokenSet(question)
	textTokens := toTokenSet(text)
	if len(questionTokens) == 0 || len(textTokens) == 0 {
		return 0.0
	}

	matches := 0
	for token := range questionTokens {
		if _, ok := textTokens[token]; ok {
			matches++
		}
	}

	denom := len(questionTokens)
	if denom < 1 {
		denom = 1
	}
	return float64(matches) / float64(denom)
}

// EntityMatchBoost adds a fixed step per extracted algorithm alias or disease
// found as a substring of the candidate text, capped at entityBoostCap.
func EntityMatchBoost(text string, entities domain.EntitySet) float64 {
	boost := 0.0
	lowered := strings.ToLower(text)
	for _, algorithm := range entities.Algorithms {
		if strings.Contains(lowered, algorithm) {
			boost += entityBoostStep
		}
	}
	for _, disease := range entities.Diseases {
		if strings.Contains(lowered, disease) {
			boost += entityBoostStep
		}
	}
	if boost > entityBoostCap {
		boost = entityBoostCap
	}
	return boost
}

// rowText picks the scoring target with a fixed field precedence:
// text, then item, then model, then empty.
func rowText(row domain.Row) string {
	for _, field := range []string{"text", "item", "model"} {
		if value, ok := row[field].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func toTokenSet(s string) map[string]struct{} {
	tokens := tokenize(s)
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		out[token] = struct{}{}
	}
	return out
}

// tokenize extracts maximal lowercase runs of ASCII letters and hyphens. A
// token must start with a letter and be at least three characters long.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := strings.TrimLeft(b.String(), "-")
		if len(token) >= 3 && token[0] >= 'a' && token[0] <= 'z' {
			tokens = append(tokens, token)
		}
		b.Reset()
	}

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || r == '-' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}
