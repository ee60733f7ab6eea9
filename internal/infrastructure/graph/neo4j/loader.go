package neo4j

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oncograph/paperqa/internal/core/domain"
)

const (
	sectionTextLimit = 5000
	defaultTitle     = "Lung Cancer Detection using Supervised ML"
)

var defaultAlgorithms = []string{"SVM", "ANN", "MLR", "Random Forest"}

var defaultModels = []string{
	"Artificial Neural Network (ANN)",
	"Support Vector Machine (SVM)",
	"Random Forest",
	"Multiple Linear Regression (MLR)",
}

// modelAccuracies are the paper's reported test-set accuracies, attached to
// whichever model node name-matches the short code.
var modelAccuracies = []struct {
	Model    string
	Accuracy float64
}{
	{"ANN", 65.75},
	{"MLR", 77.52},
	{"RF", 99.99},
	{"SVM", 98.91},
}

// Loader replaces the graph content with one extracted paper document. The
// whole load runs in a single write session: clear, constraints, paper
// metadata, the five sections with their entities, and the derived
// relationships, then a statistics pass for the logs.
type Loader struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewLoader(driver neo4j.DriverWithContext, database string) *Loader {
	return &Loader{driver: driver, database: database}
}

func (l *Loader) Load(ctx context.Context, doc *domain.PaperDocument) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: l.database,
	})
	defer session.Close(ctx)

	run := func(query string, params map[string]any) error {
		_, err := session.Run(ctx, query, params)
		return err
	}

	if err := run("MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("clear graph: %w", err)
	}
	if err := l.createConstraints(run); err != nil {
		return err
	}
	if err := l.loadPaperMetadata(run, doc); err != nil {
		return err
	}
	if err := l.loadAbstract(run, doc); err != nil {
		return err
	}
	if err := l.loadIntroduction(run, doc); err != nil {
		return err
	}
	if err := l.loadMethodology(run, doc); err != nil {
		return err
	}
	if err := l.loadResults(run, doc); err != nil {
		return err
	}
	if err := l.loadConclusion(run, doc); err != nil {
		return err
	}
	if err := l.createRelationships(run); err != nil {
		return err
	}

	l.logStatistics(ctx, session)
	return nil
}

type runFunc func(query string, params map[string]any) error

func (l *Loader) createConstraints(run runFunc) error {
	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Paper) REQUIRE p.title IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Section) REQUIRE s.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Algorithm) REQUIRE a.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Metric) REQUIRE m.name IS UNIQUE",
	}
	for _, constraint := range constraints {
		if err := run(constraint, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}
	return nil
}

func (l *Loader) loadPaperMetadata(run runFunc, doc *domain.PaperDocument) error {
	title := doc.Metadata.Title
	if title == "" {
		title = defaultTitle
	}
	err := run(`
CREATE (p:Paper {
	file_path: $file_path,
	file_size: $file_size,
	page_count: $page_count,
	author: $author,
	creator: $creator,
	title: $title
})`, map[string]any{
		"file_path":  doc.FilePath,
		"file_size":  doc.FileSizeHuman,
		"page_count": doc.PageCount,
		"author":     doc.Metadata.Author,
		"creator":    doc.Metadata.Creator,
		"title":      title,
	})
	if err != nil {
		return fmt.Errorf("load paper metadata: %w", err)
	}
	return nil
}

func (l *Loader) loadSection(run runFunc, label, name, text string) error {
	query := fmt.Sprintf(`
MATCH (p:Paper)
CREATE (s:Section:%s {name: $name, text: $text})
CREATE (p)-[:HAS_SECTION]->(s)`, label)
	if err := run(query, map[string]any{"name": name, "text": capText(text)}); err != nil {
		return fmt.Errorf("load %s section: %w", name, err)
	}
	return nil
}

func (l *Loader) loadAbstract(run runFunc, doc *domain.PaperDocument) error {
	abstract, ok := doc.Section("Abstract")
	if !ok {
		return nil
	}
	if err := l.loadSection(run, "Abstract", "Abstract", abstract.Body()); err != nil {
		return err
	}

	algorithms := abstract.EntityList("ML Tools")
	if len(algorithms) == 0 {
		algorithms = abstract.EntityList("Diagnostic Techniques")
	}
	if len(algorithms) == 0 {
		algorithms = defaultAlgorithms
	}
	for _, algorithm := range algorithms {
		err := run(`
MATCH (s:Abstract)
MERGE (a:Algorithm {name: $algo})
CREATE (s)-[:MENTIONS_ALGORITHM]->(a)`, map[string]any{"algo": algorithm})
		if err != nil {
			return fmt.Errorf("link abstract algorithm: %w", err)
		}
	}

	keywords := abstract.EntityList("Keywords")
	if len(keywords) == 0 {
		keywords = abstract.EntityList("keywords")
	}
	for _, keyword := range capList(keywords, 10) {
		err := run(`
MATCH (s:Abstract)
MERGE (k:Keyword {name: $keyword})
CREATE (s)-[:HAS_KEYWORD]->(k)`, map[string]any{"keyword": keyword})
		if err != nil {
			return fmt.Errorf("link abstract keyword: %w", err)
		}
	}
	return nil
}

func (l *Loader) loadIntroduction(run runFunc, doc *domain.PaperDocument) error {
	intro, ok := doc.Section("Introduction")
	if !ok {
		return nil
	}
	if err := l.loadSection(run, "Introduction", "Introduction", intro.Body()); err != nil {
		return err
	}

	for _, symptom := range capList(intro.EntityList("Symptoms"), 20) {
		err := run(`
MATCH (s:Introduction)
MERGE (sym:Symptom {name: $symptom})
CREATE (s)-[:MENTIONS_SYMPTOM]->(sym)`, map[string]any{"symptom": symptom})
		if err != nil {
			return fmt.Errorf("link symptom: %w", err)
		}
	}

	cancerTypes := intro.EntityList("Type of Cancer")
	if len(cancerTypes) == 0 {
		cancerTypes = intro.EntityList("Types of Cancer")
	}
	for _, cancerType := range capList(cancerTypes, 10) {
		if len(cancerType) > 100 {
			cancerType = cancerType[:100]
		}
		err := run(`
MATCH (s:Introduction)
MERGE (c:CancerType {name: $cancer_type})
CREATE (s)-[:DISCUSSES_CANCER_TYPE]->(c)`, map[string]any{"cancer_type": cancerType})
		if err != nil {
			return fmt.Errorf("link cancer type: %w", err)
		}
	}

	for _, technique := range capList(intro.EntityList("Common Diagnostic Techniques"), 10) {
		err := run(`
MATCH (s:Introduction)
MERGE (t:Technique {name: $technique, type: 'diagnostic'})
CREATE (s)-[:USES_TECHNIQUE]->(t)`, map[string]any{"technique": technique})
		if err != nil {
			return fmt.Errorf("link technique: %w", err)
		}
	}

	for _, habit := range capList(intro.EntityList("Habits"), 10) {
		err := run(`
MATCH (s:Introduction)
MERGE (r:RiskFactor {name: $habit})
CREATE (s)-[:IDENTIFIES_RISK_FACTOR]->(r)`, map[string]any{"habit": habit})
		if err != nil {
			return fmt.Errorf("link risk factor: %w", err)
		}
	}
	return nil
}

func (l *Loader) loadMethodology(run runFunc, doc *domain.PaperDocument) error {
	methodology, _ := doc.Section("Methodology")
	if err := l.loadSection(run, "Methodology", "Methodology", methodology.Body()); err != nil {
		return err
	}

	err := run(`
MATCH (s:Methodology)
CREATE (d:Dataset {
	name: 'Lung Cancer Dataset',
	source: 'data.world',
	format: 'CSV',
	instances: 1000,
	features: 24
})
CREATE (s)-[:USES_DATASET]->(d)`, nil)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	models := methodology.EntityList("Proposed Models")
	if len(models) == 0 {
		models = defaultModels
	}
	for _, model := range models {
		short, full := SplitModelName(model)
		err := run(`
MATCH (s:Methodology)
CREATE (m:Model:Algorithm {name: $name, full_name: $full_name, type: 'supervised'})
CREATE (s)-[:IMPLEMENTS_MODEL]->(m)`, map[string]any{"name": short, "full_name": full})
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
	}

	for _, symptom := range capList(methodology.EntityList("Symptoms"), 20) {
		err := run(`
MATCH (d:Dataset)
MERGE (f:Feature:Symptom {name: $symptom})
CREATE (d)-[:HAS_FEATURE]->(f)`, map[string]any{"symptom": symptom})
		if err != nil {
			return fmt.Errorf("link dataset feature: %w", err)
		}
	}
	return nil
}

func (l *Loader) loadResults(run runFunc, doc *domain.PaperDocument) error {
	results, _ := doc.Section("Results")
	if err := l.loadSection(run, "Results", "Results", results.Body()); err != nil {
		return err
	}

	for _, perf := range modelAccuracies {
		err := run(`
MATCH (m:Model)
WHERE m.name CONTAINS $model OR m.full_name CONTAINS $model
MATCH (s:Results)
CREATE (r:Result {accuracy: $accuracy, metric: 'Accuracy (%)', evaluated_on: 'Test Set'})
CREATE (m)-[:HAS_RESULT]->(r)
CREATE (s)-[:CONTAINS_RESULT]->(r)`, map[string]any{"model": perf.Model, "accuracy": perf.Accuracy})
		if err != nil {
			return fmt.Errorf("load %s result: %w", perf.Model, err)
		}
	}

	err := run(`
MATCH (m:Model)
WHERE m.name CONTAINS 'Forest' OR m.full_name CONTAINS 'Forest'
MATCH (p:Paper)
CREATE (p)-[:BEST_MODEL]->(m)`, nil)
	if err != nil {
		return fmt.Errorf("mark best model: %w", err)
	}
	return nil
}

func (l *Loader) loadConclusion(run runFunc, doc *domain.PaperDocument) error {
	conclusion, _ := doc.Section("Conclusion")
	return l.loadSection(run, "Conclusion", "Conclusion", conclusion.Body())
}

func (l *Loader) createRelationships(run runFunc) error {
	err := run(`
MATCH (s:Symptom)
MATCH (c:CancerType)
WHERE c.name CONTAINS 'lung' OR c.name CONTAINS 'Lung'
CREATE (s)-[:INDICATES]->(c)`, nil)
	if err != nil {
		return fmt.Errorf("create INDICATES relationships: %w", err)
	}

	err = run(`
MATCH (r:RiskFactor)
MATCH (c:CancerType)
WHERE c.name CONTAINS 'lung' OR c.name CONTAINS 'Lung'
CREATE (r)-[:INCREASES_RISK_OF]->(c)`, nil)
	if err != nil {
		return fmt.Errorf("create INCREASES_RISK_OF relationships: %w", err)
	}
	return nil
}

func (l *Loader) logStatistics(ctx context.Context, session neo4j.SessionWithContext) {
	nodeCount := l.singleCount(ctx, session, "MATCH (n) RETURN count(n) AS count")
	relCount := l.singleCount(ctx, session, "MATCH ()-[r]->() RETURN count(r) AS count")
	slog.Info("graph_loaded", "nodes", nodeCount, "relationships", relCount)

	result, err := session.Run(ctx, "MATCH (n) RETURN labels(n)[0] AS type, count(*) AS count ORDER BY count DESC", nil)
	if err != nil {
		return
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return
	}
	for _, record := range records {
		m := record.AsMap()
		slog.Info("graph_label_count", "label", m["type"], "count", m["count"])
	}
}

func (l *Loader) singleCount(ctx context.Context, session neo4j.SessionWithContext, query string) int64 {
	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return 0
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0
	}
	count, _ := record.AsMap()["count"].(int64)
	return count
}

// SplitModelName extracts the short code from a parenthesized model name:
// "Support Vector Machine (SVM)" yields ("SVM", "Support Vector Machine").
// Names without parentheses use the same value for both.
func SplitModelName(name string) (short, full string) {
	openIdx := strings.Index(name, "(")
	closeIdx := strings.Index(name, ")")
	if openIdx >= 0 && closeIdx > openIdx {
		return name[openIdx+1 : closeIdx], strings.TrimSpace(name[:openIdx])
	}
	return name, name
}

func capText(text string) string {
	if len(text) > sectionTextLimit {
		return text[:sectionTextLimit]
	}
	return text
}

func capList(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
