package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kcalvin/solarsizer/internal/agent"
	"github.com/kcalvin/solarsizer/internal/calculator"
	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/metrics"
	"github.com/kcalvin/solarsizer/internal/webhook"
)

type errorResponse struct {
	Error string `json:"error"`
}

type batchRequest struct {
	Items []map[string]json.RawMessage `json:"items" validate:"required,max=5000"`
}

type toolResponse struct {
	Result string `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	var item calculator.Item
	if err := json.Unmarshal(body, &item); err != nil || item == nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	result := calculator.ItemResult{Input: item}
	req, err := item.Request()
	if err == nil {
		var res calculator.Result
		res, err = calculator.Calculate(req, s.opts)
		result.Result = &res
	}
	if err != nil {
		result.Err = err
		metrics.ObserveCalculation(calculator.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, result.ErrorMessage())
		return
	}

	metrics.ObserveCalculation(result.Result.Outcome())
	logging.FromContext(r.Context()).Debug().
		Str("outcome", result.Result.Outcome()).
		Float64("annual_kwh", result.Result.AnnualUsageKwh).
		Msg("calculation completed")
	writeJSON(w, http.StatusOK, result.Result)
}

func (s *Server) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	var items []calculator.Input
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		items, err = calculator.DecodeItems(trimmed)
	} else {
		var breq batchRequest
		if err = json.Unmarshal(body, &breq); err == nil {
			if err = s.validate.Struct(breq); err == nil {
				items = calculator.UnwrapItems(breq.Items)
			}
		}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := calculator.CalculateItems(r.Context(), items, s.opts, s.concurrency, nil)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	for _, res := range results {
		if res.Err != nil {
			metrics.ObserveCalculation(calculator.OutcomeInvalid)
			continue
		}
		metrics.ObserveCalculation(res.Result.Outcome())
	}
	writeJSON(w, http.StatusOK, calculator.Wrap(results))
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, agent.Definitions())
}

func (s *Server) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	if s.tools == nil {
		writeError(w, http.StatusServiceUnavailable, "agent tools are not configured")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	out, err := s.tools.Invoke(r.Context(), chi.URLParam(r, "name"), body)
	if err != nil {
		writeError(w, toolErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toolResponse{Result: out})
}

func toolErrorStatus(err error) int {
	var te *webhook.ToolError
	switch {
	case errors.As(err, &te):
		return http.StatusBadGateway
	case errors.Is(err, agent.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, agent.ErrInvalidArguments), errors.Is(err, webhook.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, webhook.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
