package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oncograph/paperqa/internal/core/ports"
	"github.com/oncograph/paperqa/internal/observability/metrics"
)

type Options struct {
	Service            string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxInFlight        int
	BackpressureWait   time.Duration
	RecentQuestionsCap int
}

type Router struct {
	askUC    ports.QuestionAnswerer
	ingestUC ports.PaperIngestor
	papers   ports.PaperReader
	reportUC ports.ResultsReporter
	log      ports.QuestionLog
	metrics  *metrics.HTTPServerMetrics
	opts     Options
}

func NewRouter(
	askUC ports.QuestionAnswerer,
	ingestUC ports.PaperIngestor,
	papers ports.PaperReader,
	reportUC ports.ResultsReporter,
	log ports.QuestionLog,
	httpMetrics *metrics.HTTPServerMetrics,
	opts Options,
) *Router {
	if opts.Service == "" {
		opts.Service = "paperqa-api"
	}
	if opts.RecentQuestionsCap <= 0 {
		opts.RecentQuestionsCap = 50
	}
	return &Router{
		askUC:    askUC,
		ingestUC: ingestUC,
		papers:   papers,
		reportUC: reportUC,
		log:      log,
		metrics:  httpMetrics,
		opts:     opts,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/ask", rt.ask)
	mux.HandleFunc("/v1/papers", rt.uploadPaper)
	mux.HandleFunc("/v1/papers/", rt.getPaperByID)
	mux.HandleFunc("/v1/reports/results", rt.resultsReport)
	mux.HandleFunc("/v1/questions", rt.recentQuestions)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = validationMiddleware(handler)
	if rt.opts.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.opts.MaxInFlight, rt.opts.BackpressureWait)
	}
	if rt.opts.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.opts.RateLimitRPS, rt.opts.RateLimitBurst)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.opts.Service, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
		Limit    int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	start := time.Now()
	answer, err := rt.askUC.Ask(r.Context(), req.Question, req.Limit)
	if err != nil {
		writeError(w, r, "answer question", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordQuestion(rt.opts.Service, string(answer.Intent), len(answer.Results), time.Since(start))
	}

	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) uploadPaper(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	paper, err := rt.ingestUC.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, r, "upload paper", err)
		return
	}

	writeJSON(w, http.StatusAccepted, paper)
}

func (rt *Router) getPaperByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/papers/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "paper id is required"})
		return
	}

	paper, err := rt.papers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, "get paper", err)
		return
	}
	writeJSON(w, http.StatusOK, paper)
}

func (rt *Router) resultsReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	workbook, err := rt.reportUC.ResultsWorkbook(r.Context())
	if err != nil {
		writeError(w, r, "build results report", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="model_results.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) recentQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.log == nil {
		writeJSON(w, http.StatusOK, map[string]any{"questions": []any{}})
		return
	}

	records, err := rt.log.ListRecent(r.Context(), rt.opts.RecentQuestionsCap)
	if err != nil {
		writeError(w, r, "list recent questions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": records})
}

func writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		slog.Error(operation,
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
