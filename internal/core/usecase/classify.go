package usecase

import (
	"strings"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// intentRule pairs an intent with its trigger keywords. The slice order below
// is the tie-break rule: rules are checked top to bottom, keywords left to
// right, and the first substring hit wins. Never reorder without revisiting
// every downstream consumer.
type intentRule struct {
	intent   domain.Intent
	keywords []string
}

var intentRules = []intentRule{
	{domain.IntentSymptoms, []string{"symptom", "symptoms"}},
	{domain.IntentRiskFactors, []string{"risk", "risk factor", "risk factors", "increase the risk"}},
	{domain.IntentDiagnosticTechniques, []string{"diagnostic", "diagnosis", "technique", "techniques"}},
	{domain.IntentDataset, []string{"dataset", "data set", "instances", "features", "source"}},
	{domain.IntentCancerTypes, []string{"type of cancer", "types of cancer", "cancer types", "stage", "stages"}},
	{domain.IntentResults, []string{"accuracy", "result", "results", "benchmark", "performance", "best model"}},
	{domain.IntentConclusion, []string{"conclusion", "summary"}},
}

// algorithmAlias maps a short algorithm code to the spellings that imply it.
type algorithmAlias struct {
	code     string
	keywords []string
}

var algorithmAliases = []algorithmAlias{
	{"svm", []string{"svm", "support vector"}},
	{"ann", []string{"ann", "artificial neural"}},
	{"rf", []string{"rf", "random forest"}},
	{"mlr", []string{"mlr", "multiple linear regression"}},
}

var sectionNames = []string{"abstract", "introduction", "methodology", "results", "conclusion"}

// Classify determines the question's intent and extracts the entity set.
// Pure and deterministic; matching is substring containment over the
// normalized question, never statistical.
func Classify(question string) (domain.Intent, domain.EntitySet) {
	return detectIntent(question), extractEntities(question)
}

// normalizeQuestion lowercases, collapses whitespace runs and trims.
func normalizeQuestion(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func detectIntent(question string) domain.Intent {
	q := normalizeQuestion(question)
	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(q, keyword) {
				return rule.intent
			}
		}
	}
	return domain.IntentGeneric
}

func extractEntities(question string) domain.EntitySet {
	q := normalizeQuestion(question)

	entities := domain.EntitySet{
		Diseases:   []string{},
		Algorithms: []string{},
		Sections:   []string{},
	}

	if strings.Contains(q, "lung cancer") {
		entities.Diseases = append(entities.Diseases, "lung cancer")
	}

	for _, alias := range algorithmAliases {
		for _, keyword := range alias.keywords {
			if strings.Contains(q, keyword) {
				entities.Algorithms = append(entities.Algorithms, alias.code)
				break
			}
		}
	}

	for _, section := range sectionNames {
		if strings.Contains(q, section) {
			entities.Sections = append(entities.Sections, section)
		}
	}

	return entities
}
