package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"genegraph/internal/config"
	"genegraph/internal/models"
	"genegraph/internal/storage"
	"genegraph/internal/util"
	"genegraph/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg       config.Config
	db        *storage.DB
	runRepo   *storage.RunRepo
	graphRepo *storage.GraphRepo
	temporal  tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:       cfg,
		db:        db,
		runRepo:   storage.NewRunRepo(db),
		graphRepo: storage.NewGraphRepo(db),
		temporal:  tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/runs", s.handleRuns)
	mux.HandleFunc("/runs/", s.handleRunsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		runs, err := s.runRepo.ListRuns(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	case http.MethodPost:
		var req struct {
			TaxonIDs []string `json:"taxon_ids"`
			GeneIDs  []string `json:"gene_ids"`
			TestMode bool     `json:"test_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		taxa := req.TaxonIDs
		if len(taxa) == 0 {
			taxa = s.cfg.TaxonIDs
		}
		geneIDs := req.GeneIDs
		if len(geneIDs) == 0 {
			geneIDs = s.cfg.TestGeneIDs
		}
		testMode := req.TestMode || s.cfg.TestMode

		runID := uuid.NewString()
		if err := s.runRepo.CreateRun(r.Context(), models.Run{
			RunID:    runID,
			Status:   "running",
			TaxonIDs: taxa,
			TestMode: testMode,
		}); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}

		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                                       "ingest-" + runID,
			TaskQueue:                                s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			WorkflowExecutionErrorWhenAlreadyStarted: true,
		}, workflows.IngestWorkflow, workflows.IngestInput{
			RunID:    runID,
			InputDir: s.cfg.DataInRoot,
			TaxonIDs: taxa,
			GeneIDs:  geneIDs,
			TestMode: testMode,
		})
		if err != nil {
			writeErr(w, http.StatusConflict, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{
			"run_id":      runID,
			"workflow_id": we.GetID(),
			"taxon_ids":   taxa,
		})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleRunsScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/runs/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	runID := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		run, err := s.runRepo.GetRun(r.Context(), runID)
		if errors.Is(err, util.ErrRunNotFound) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		out := map[string]any{"run": run}
		// Attach live progress when the workflow is still queryable.
		if resp, err := s.temporal.QueryWorkflow(r.Context(), "ingest-"+runID, "", workflows.QueryGetIngestProgress); err == nil {
			var prog workflows.IngestProgress
			if err := resp.Get(&prog); err == nil {
				out["progress"] = prog
			}
		}
		writeJSON(w, http.StatusOK, out)
		return
	}

	if len(parts) == 2 && parts[1] == "graph" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		nodes, edges, err := s.graphRepo.GetGraph(r.Context(), runID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"nodes": nodes, "edges": edges})
		return
	}

	if len(parts) == 2 && parts[1] == "orthologs" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		gene := strings.TrimSpace(r.URL.Query().Get("gene"))
		if gene == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("gene is required"))
			return
		}
		edges, err := s.graphRepo.ListOrthologs(r.Context(), runID, gene)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		mates := make([]string, 0, len(edges))
		for _, e := range edges {
			if e.Subject == gene {
				mates = append(mates, e.Object)
			} else {
				mates = append(mates, e.Subject)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"gene": gene, "orthologs": mates, "edges": edges})
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "GG-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "GG-DB-5001",
				Message: "Database schema is not initialized. Run migrations and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "GG-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "GG-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "GG-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "GG-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "GG-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "GG-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "gene is required"):
			msg = "A gene identifier is required."
		case strings.Contains(low, "run not found"):
			msg = "Run was not found."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
