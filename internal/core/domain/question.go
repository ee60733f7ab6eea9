package domain

// Intent is the single classified purpose of a question, drawn from a fixed
// closed label set. Exactly one intent is assigned per question.
type Intent string

const (
	IntentSymptoms             Intent = "symptoms"
	IntentRiskFactors          Intent = "risk_factors"
	IntentDiagnosticTechniques Intent = "diagnostic_techniques"
	IntentDataset              Intent = "dataset"
	IntentCancerTypes          Intent = "cancer_types"
	IntentResults              Intent = "results"
	IntentConclusion           Intent = "conclusion"
	IntentGeneric              Intent = "generic"
)

// EntitySet holds the domain entities detected in a question by substring
// matching. The three lists are independent of each other and of the intent.
type EntitySet struct {
	Diseases   []string `json:"diseases"`
	Algorithms []string `json:"algorithms"`
	Sections   []string `json:"sections"`
}

// QuerySpec is a tagged, parameterized Cypher query. The query text is part
// of the compatibility contract with the graph schema and must not be edited.
type QuerySpec struct {
	Tag    string         `json:"tag"`
	Query  string         `json:"query"`
	Params map[string]any `json:"params"`
}

// Row is one record returned by executing a query spec. After scoring it
// additionally carries FieldScore and FieldTag.
type Row map[string]any

const (
	FieldScore = "_score"
	FieldTag   = "_tag"
)

// Clone returns a shallow copy so scoring never mutates the caller's rows.
func (r Row) Clone() Row {
	out := make(Row, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r Row) Score() float64 {
	score, _ := r[FieldScore].(float64)
	return score
}

func (r Row) Tag() string {
	tag, _ := r[FieldTag].(string)
	return tag
}

// Answer is the ranked response for one question.
type Answer struct {
	Question string    `json:"question"`
	Intent   Intent    `json:"intent"`
	Entities EntitySet `json:"entities"`
	Results  []Row     `json:"results"`
}
