// Package httpadapter exposes the gate over HTTP: synchronous
// evaluation of raw text plus the asynchronous submit/screen flow.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/legalaid/docgate/internal/core/ports"
)

// GateObserver receives the outcome of every synchronous evaluation.
type GateObserver interface {
	RecordVerdict(service, outcome string, escalated bool, score float64, duration time.Duration)
}

type Router struct {
	gate      ports.DocumentGate
	submitter ports.DocumentSubmitter
	reader    ports.DocumentReader
	feedback  ports.FeedbackRecorder

	observer GateObserver

	rateLimitRPS   float64
	rateLimitBurst int

	maxInFlight      int
	backpressureWait time.Duration
}

type Option func(*Router)

func WithGateObserver(observer GateObserver) Option {
	return func(rt *Router) { rt.observer = observer }
}

func WithRateLimit(rps float64, burst int) Option {
	return func(rt *Router) {
		rt.rateLimitRPS = rps
		rt.rateLimitBurst = burst
	}
}

func WithBackpressure(maxInFlight int, wait time.Duration) Option {
	return func(rt *Router) {
		rt.maxInFlight = maxInFlight
		rt.backpressureWait = wait
	}
}

func NewRouter(
	gate ports.DocumentGate,
	submitter ports.DocumentSubmitter,
	reader ports.DocumentReader,
	feedback ports.FeedbackRecorder,
	options ...Option,
) *Router {
	rt := &Router{
		gate:      gate,
		submitter: submitter,
		reader:    reader,
		feedback:  feedback,
	}
	for _, option := range options {
		option(rt)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/gate/evaluate", rt.evaluate)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/feedback", rt.recordFeedback)

	var handler http.Handler = mux
	if rt.maxInFlight > 0 {
		wait := rt.backpressureWait
		if wait <= 0 {
			wait = 100 * time.Millisecond
		}
		handler = backpressureMiddleware(handler, rt.maxInFlight, wait)
	}
	if rt.rateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type evaluateRequest struct {
	Text string `json:"text"`
}

type evaluateResponse struct {
	Outcome       string  `json:"outcome"`
	Label         string  `json:"label"`
	Score         float64 `json:"score"`
	Escalated     bool    `json:"escalated"`
	Justification string  `json:"justification"`
}

func (rt *Router) evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	verdict, err := rt.gate.Evaluate(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.observer != nil {
		rt.observer.RecordVerdict("docgate-api", verdict.Outcome(), verdict.Escalated, verdict.Score, time.Since(start))
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Outcome:       verdict.Outcome(),
		Label:         verdict.Label,
		Score:         verdict.Score,
		Escalated:     verdict.Escalated,
		Justification: verdict.Justification,
	})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
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

	doc, err := rt.submitter.Submit(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type feedbackRequest struct {
	DocumentID string `json:"document_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (rt *Router) recordFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_id is required"})
		return
	}

	fb, err := rt.feedback.Record(r.Context(), req.DocumentID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
