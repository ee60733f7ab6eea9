package usecase

import (
	"strings"
	"testing"

	"github.com/oncograph/paperqa/internal/core/domain"
)

func TestBuildQueriesNeverEmpty(t *testing.T) {
	intents := []domain.Intent{
		domain.IntentSymptoms,
		domain.IntentRiskFactors,
		domain.IntentDiagnosticTechniques,
		domain.IntentDataset,
		domain.IntentCancerTypes,
		domain.IntentResults,
		domain.IntentConclusion,
		domain.IntentGeneric,
		domain.Intent("unknown-intent"),
	}
	for _, intent := range intents {
		specs := BuildQueries(intent, domain.EntitySet{}, "anything")
		if len(specs) == 0 {
			t.Fatalf("BuildQueries(%s) returned no specs", intent)
		}
	}
}

func TestBuildQueriesSingleSpecIntents(t *testing.T) {
	cases := []struct {
		intent domain.Intent
		tag    string
	}{
		{domain.IntentSymptoms, TagSymptoms},
		{domain.IntentRiskFactors, TagRiskFactors},
		{domain.IntentDiagnosticTechniques, TagDiagnosticTechniques},
		{domain.IntentDataset, TagDataset},
		{domain.IntentCancerTypes, TagCancerTypes},
		{domain.IntentConclusion, TagConclusion},
	}
	for _, tc := range cases {
		specs := BuildQueries(tc.intent, domain.EntitySet{}, "q")
		if len(specs) != 1 {
			t.Fatalf("BuildQueries(%s) returned %d specs, want 1", tc.intent, len(specs))
		}
		if specs[0].Tag != tc.tag {
			t.Fatalf("BuildQueries(%s) tag = %s, want %s", tc.intent, specs[0].Tag, tc.tag)
		}
		if len(specs[0].Params) != 0 {
			t.Fatalf("BuildQueries(%s) expected empty params, got %v", tc.intent, specs[0].Params)
		}
	}
}

func TestBuildQueriesResultsEmitsTwoSpecsInOrder(t *testing.T) {
	specs := BuildQueries(domain.IntentResults, domain.EntitySet{}, "q")
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Tag != TagResults || specs[1].Tag != TagBestModel {
		t.Fatalf("expected [Results BestModel], got [%s %s]", specs[0].Tag, specs[1].Tag)
	}
	for _, spec := range specs {
		if len(spec.Params) != 0 {
			t.Fatalf("expected empty params for %s, got %v", spec.Tag, spec.Params)
		}
	}
	if !strings.Contains(specs[0].Query, "coalesce(m.full_name,m.name)") {
		t.Fatalf("results query must prefer the model full name: %s", specs[0].Query)
	}
}

func TestBuildQueriesGenericFallsBackToSections(t *testing.T) {
	question := "  Raw Question Text, NOT normalized  "
	specs := BuildQueries(domain.IntentGeneric, domain.EntitySet{}, question)
	if len(specs) != 1 {
		t.Fatalf("expected exactly one fallback spec, got %d", len(specs))
	}
	spec := specs[0]
	if spec.Tag != TagSections {
		t.Fatalf("expected Sections tag, got %s", spec.Tag)
	}
	if spec.Params["q"] != question {
		t.Fatalf("fallback must bind the raw question text, got %v", spec.Params["q"])
	}
	if !strings.Contains(spec.Query, "LIMIT 50") {
		t.Fatalf("fallback query must cap rows at 50: %s", spec.Query)
	}
}

func TestBuildQueriesSymptomsQueryText(t *testing.T) {
	specs := BuildQueries(domain.IntentSymptoms, domain.EntitySet{}, "q")
	want := "MATCH (:Introduction)-[:MENTIONS_SYMPTOM]->(s:Symptom) RETURN s.name AS item"
	if specs[0].Query != want {
		t.Fatalf("symptoms query drifted:\n got %s\nwant %s", specs[0].Query, want)
	}
}
