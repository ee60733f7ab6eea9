package usecase

import "github.com/oncograph/paperqa/internal/core/domain"

// Spec tags. TagBestModel and TagSections are deliberately absent from the
// proximity boost set in rank.go.
const (
	TagSymptoms             = "Symptoms"
	TagRiskFactors          = "RiskFactors"
	TagDiagnosticTechniques = "DiagnosticTechniques"
	TagDataset              = "Dataset"
	TagCancerTypes          = "CancerTypes"
	TagResults              = "Results"
	TagBestModel            = "BestModel"
	TagConclusion           = "Conclusion"
	TagSections             = "Sections"
)

// BuildQueries maps an intent to its ordered query specs. The Cypher text is
// a compatibility contract with the loaded graph schema. The returned list is
// never empty: when no intent branch matches, the full-text Sections fallback
// is emitted with the raw question text bound as $q.
func BuildQueries(intent domain.Intent, entities domain.EntitySet, questionText string) []domain.QuerySpec {
	specs := make([]domain.QuerySpec, 0, 2)

	switch intent {
	case domain.IntentSymptoms:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagSymptoms,
			Query:  "MATCH (:Introduction)-[:MENTIONS_SYMPTOM]->(s:Symptom) RETURN s.name AS item",
			Params: map[string]any{},
		})
	case domain.IntentRiskFactors:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagRiskFactors,
			Query:  "MATCH (:Introduction)-[:IDENTIFIES_RISK_FACTOR]->(r:RiskFactor) RETURN r.name AS item",
			Params: map[string]any{},
		})
	case domain.IntentDiagnosticTechniques:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagDiagnosticTechniques,
			Query:  "MATCH (:Introduction)-[:USES_TECHNIQUE]->(t:Technique) RETURN t.name AS item",
			Params: map[string]any{},
		})
	case domain.IntentDataset:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagDataset,
			Query:  "MATCH (:Methodology)-[:USES_DATASET]->(d:Dataset) RETURN d.name AS name, d.source AS source, d.instances AS instances, d.features AS features, d.format AS format",
			Params: map[string]any{},
		})
	case domain.IntentCancerTypes:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagCancerTypes,
			Query:  "MATCH (:Introduction)-[:DISCUSSES_CANCER_TYPE]->(c:CancerType) RETURN c.name AS item",
			Params: map[string]any{},
		})
	case domain.IntentResults:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagResults,
			Query:  "MATCH (m:Model)-[:HAS_RESULT]->(r:Result) RETURN coalesce(m.full_name,m.name) AS model, r.metric AS metric, r.accuracy AS accuracy",
			Params: map[string]any{},
		})
		specs = append(specs, domain.QuerySpec{
			Tag:    TagBestModel,
			Query:  "MATCH (:Paper)-[:BEST_MODEL]->(m:Model) RETURN coalesce(m.full_name,m.name) AS bestModel",
			Params: map[string]any{},
		})
	case domain.IntentConclusion:
		specs = append(specs, domain.QuerySpec{
			Tag:    TagConclusion,
			Query:  "MATCH (s:Section:Conclusion) RETURN s.name AS name, s.text AS text",
			Params: map[string]any{},
		})
	}

	if len(specs) == 0 {
		specs = append(specs, domain.QuerySpec{
			Tag:    TagSections,
			Query:  "MATCH (s:Section) WHERE toLower(s.text) CONTAINS toLower($q) RETURN s.name AS name, s.text AS text LIMIT 50",
			Params: map[string]any{"q": questionText},
		})
	}

	return specs
}
