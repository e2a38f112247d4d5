package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/engine"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classifyResponse pairs the routed archetype with the rule that matched.
type classifyResponse struct {
	Archetype archetype.Archetype `json:"archetype"`
	Method    string              `json:"method"`
	Rule      string              `json:"rule"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var in archetype.DiagnosticInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, rule := archetype.ClassifyExplain(in)
	writeJSON(w, http.StatusOK, classifyResponse{
		Archetype: a,
		Method:    a.Label(),
		Rule:      rule,
	})
}

// valuationRequest is the POST /v1/valuations body. Archetype may be
// provided directly or derived from the diagnostic signals.
type valuationRequest struct {
	Company     string                     `json:"company"`
	Archetype   archetype.Archetype        `json:"archetype,omitempty"`
	Diagnostic  *archetype.DiagnosticInput `json:"diagnostic,omitempty"`
	Financials  model.FinancialData        `json:"financials"`
	Qualitative *model.QualitativeData     `json:"qualitative,omitempty"`
}

func (s *Server) handleCreateValuation(w http.ResponseWriter, r *http.Request) {
	var req valuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	a := req.Archetype
	if a == "" {
		if req.Diagnostic == nil {
			writeError(w, http.StatusBadRequest, "archetype or diagnostic is required")
			return
		}
		a = archetype.Classify(*req.Diagnostic)
	}

	result, err := s.calc.Calculate(a, req.Financials, req.Qualitative)
	if err != nil {
		if eris.Is(err, engine.ErrUnknownArchetype) {
			writeError(w, http.StatusUnprocessableEntity, "unknown archetype: "+string(a))
			return
		}
		zap.L().Error("valuation failed", zap.String("company", req.Company), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "valuation failed")
		return
	}

	v := &model.Valuation{
		Company:     req.Company,
		Archetype:   a,
		Financials:  req.Financials,
		Qualitative: req.Qualitative,
		Result:      *result,
	}
	if err := s.store.SaveValuation(r.Context(), v); err != nil {
		zap.L().Error("save valuation", zap.String("company", req.Company), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "save valuation")
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetValuation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	v, err := s.store.GetValuation(r.Context(), id)
	if err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "valuation not found")
			return
		}
		zap.L().Error("get valuation", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "get valuation")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleListValuations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.Filter{
		Archetype: archetype.Archetype(q.Get("archetype")),
		Company:   q.Get("company"),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}
	if filter.Archetype != "" && !filter.Archetype.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "unknown archetype: "+string(filter.Archetype))
		return
	}

	vals, err := s.store.ListValuations(r.Context(), filter)
	if err != nil {
		zap.L().Error("list valuations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list valuations")
		return
	}
	if vals == nil {
		vals = []model.Valuation{}
	}
	writeJSON(w, http.StatusOK, vals)
}

func (s *Server) handleMultiples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.table.Entries())
}
