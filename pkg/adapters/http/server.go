package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/sanitize"
	"github.com/aretw0/parley/internal/validator"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/links"
	"github.com/aretw0/parley/pkg/script"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIVersion is the version of the JSON contract served by this adapter.
const APIVersion = "0.1.0"

// DefaultMaxBodySize caps request bodies when no limit is configured (8MB).
const DefaultMaxBodySize = 8 << 20

// Server serves the script operations to an editor over JSON.
type Server struct {
	parser   *script.Parser
	logger   *slog.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	maxSize  int
	maxBody  int64
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithParser sets the parser used for /lines/parse and /responses/parse.
func WithParser(p *script.Parser) Option {
	return func(s *Server) {
		s.parser = p
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics enables request metrics on reg and serves them on GET /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithMaxScriptSize caps the size in bytes of scripts sent to the parse
// endpoints. Zero keeps sanitize.DefaultMaxSize.
func WithMaxScriptSize(n int) Option {
	return func(s *Server) {
		s.maxSize = n
	}
}

// WithMaxBodySize caps the size in bytes of any request body, node documents
// included. Zero keeps DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		s.maxBody = n
	}
}

// NewHandler creates a new HTTP handler exposing the script operations.
func NewHandler(opts ...Option) http.Handler {
	s := &Server{
		parser: script.NewParser(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodySize
	}

	r := chi.NewRouter()
	if s.registry != nil {
		s.metrics = NewMetrics(s.registry)
		r.Use(s.metrics.middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Post("/lines/parse", s.ParseLines)
	r.Post("/lines/render", s.RenderLines)
	r.Post("/responses/parse", s.ParseResponses)
	r.Post("/responses/render", s.RenderResponses)

	r.Post("/nodes/filter", s.FilterNodes)
	r.Post("/nodes/links", s.NodeLinks)
	r.Post("/nodes/validate", s.ValidateNodes)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ParseRequest is the body of the parse endpoints.
type ParseRequest struct {
	Text  string        `json:"text"`
	Nodes []domain.Node `json:"nodes"`
}

// ParseErrorResponse is returned with 422 when a script is malformed.
type ParseErrorResponse struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// LinesBody carries line records.
type LinesBody struct {
	Lines []domain.LineRecord `json:"lines"`
}

// ResponsesBody carries response records.
type ResponsesBody struct {
	Responses []domain.Response `json:"responses"`
}

// RenderLinesRequest is the body of POST /lines/render. Nodes name targets
// given only by ID.
type RenderLinesRequest struct {
	Lines []domain.LineRecord `json:"lines"`
	Nodes []domain.Node       `json:"nodes"`
}

// RenderResponsesRequest is the body of POST /responses/render.
type RenderResponsesRequest struct {
	Responses []domain.Response `json:"responses"`
	Nodes     []domain.Node     `json:"nodes"`
}

// TextBody carries a rendered script.
type TextBody struct {
	Text string `json:"text"`
}

// FilterRequest is the body of POST /nodes/filter.
type FilterRequest struct {
	Query string        `json:"query"`
	Nodes []domain.Node `json:"nodes"`
}

// NodesBody carries nodes.
type NodesBody struct {
	Nodes []domain.Node `json:"nodes"`
}

// LinksRequest is the body of POST /nodes/links.
type LinksRequest struct {
	NodeID string        `json:"nodeId"`
	Nodes  []domain.Node `json:"nodes"`
}

// LinksResponse lists the edges around one node.
type LinksResponse struct {
	Outgoing []domain.Link `json:"outgoing"`
	Incoming []string      `json:"incoming"`
	// Sources maps each incoming item ID to the ID of the node that owns it.
	Sources map[string]string `json:"sources"`
}

// ValidateRequest is the body of POST /nodes/validate.
type ValidateRequest struct {
	Start string        `json:"start"`
	Nodes []domain.Node `json:"nodes"`
}

// ValidateResponse reports graph integrity.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Issues []validator.Issue `json:"issues"`
}

// ParseLines handles the POST /lines/parse request.
func (s *Server) ParseLines(w http.ResponseWriter, r *http.Request) {
	var body ParseRequest
	if !s.decode(w, r, &body) {
		return
	}

	text, ok := s.cleanScript(w, body.Text)
	if !ok {
		return
	}

	lines, err := s.parser.Lines(text, body.Nodes)
	if err != nil {
		s.metrics.parseFailed("lines")
		s.writeParseError(w, err)
		return
	}

	records := domain.LineRecords(lines)
	if records == nil {
		records = []domain.LineRecord{}
	}
	s.writeJSON(w, http.StatusOK, LinesBody{Lines: records})
}

// ParseResponses handles the POST /responses/parse request.
func (s *Server) ParseResponses(w http.ResponseWriter, r *http.Request) {
	var body ParseRequest
	if !s.decode(w, r, &body) {
		return
	}

	text, ok := s.cleanScript(w, body.Text)
	if !ok {
		return
	}

	responses, err := s.parser.Responses(text, body.Nodes)
	if err != nil {
		s.metrics.parseFailed("responses")
		s.writeParseError(w, err)
		return
	}
	if responses == nil {
		responses = []domain.Response{}
	}
	s.writeJSON(w, http.StatusOK, ResponsesBody{Responses: responses})
}

// RenderLines handles the POST /lines/render request.
func (s *Server) RenderLines(w http.ResponseWriter, r *http.Request) {
	var body RenderLinesRequest
	if !s.decode(w, r, &body) {
		return
	}
	text := script.LinesToText(domain.LinesFromRecords(body.Lines), body.Nodes)
	s.writeJSON(w, http.StatusOK, TextBody{Text: text})
}

// RenderResponses handles the POST /responses/render request.
func (s *Server) RenderResponses(w http.ResponseWriter, r *http.Request) {
	var body RenderResponsesRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.writeJSON(w, http.StatusOK, TextBody{Text: script.ResponsesToText(body.Responses, body.Nodes)})
}

// FilterNodes handles the POST /nodes/filter request.
func (s *Server) FilterNodes(w http.ResponseWriter, r *http.Request) {
	var body FilterRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.writeJSON(w, http.StatusOK, NodesBody{Nodes: links.Filter(body.Query, body.Nodes)})
}

// NodeLinks handles the POST /nodes/links request.
func (s *Server) NodeLinks(w http.ResponseWriter, r *http.Request) {
	var body LinksRequest
	if !s.decode(w, r, &body) {
		return
	}

	var node *domain.Node
	for i := range body.Nodes {
		if body.Nodes[i].ID == body.NodeID {
			node = &body.Nodes[i]
			break
		}
	}
	if node == nil {
		http.Error(w, "Node not found", http.StatusNotFound)
		return
	}

	resp := LinksResponse{
		Outgoing: []domain.Link{},
		Incoming: links.Incoming(node, body.Nodes),
		Sources:  map[string]string{},
	}
	for link := range links.Outgoing(node) {
		resp.Outgoing = append(resp.Outgoing, link)
	}
	owners := links.Owners(body.Nodes)
	for _, id := range resp.Incoming {
		resp.Sources[id] = owners[id].ID
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ValidateNodes handles the POST /nodes/validate request.
func (s *Server) ValidateNodes(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}

	resp := ValidateResponse{Valid: true, Issues: []validator.Issue{}}
	if err := validator.Validate(body.Nodes, body.Start); err != nil {
		var report *validator.Report
		if !errors.As(err, &report) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp.Valid = false
		resp.Issues = report.Issues
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "parley-http",
		"version":     parley.Version,
		"api_version": APIVersion,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			s.logger.Warn("Request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) cleanScript(w http.ResponseWriter, text string) (string, bool) {
	clean, err := sanitize.Script(text, s.maxSize)
	if err == nil {
		return clean, true
	}
	status := http.StatusBadRequest
	if errors.Is(err, sanitize.ErrTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	s.logger.Warn("Script rejected", "error", err, "size", len(text))
	http.Error(w, err.Error(), status)
	return "", false
}

func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var perr *domain.ParseError
	if !errors.As(err, &perr) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("Parse failed", "error", err)
		return
	}
	s.logger.Debug("Script rejected", "line", perr.Line, "error", err)
	s.writeJSON(w, http.StatusUnprocessableEntity, ParseErrorResponse{Message: perr.Message, Line: perr.Line})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
