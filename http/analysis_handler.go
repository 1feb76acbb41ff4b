package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"strategy-engine/domain"
	"strategy-engine/service"
)

type AnalysisHandler struct {
	service *service.AnalysisService
}

func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var docs domain.DocumentSet
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	analysis, err := h.service.Analyze(r.Context(), docs)
	if err != nil {
		var inputErr *service.InputError
		if errors.As(err, &inputErr) {
			writeError(w, http.StatusBadRequest, errorResponse{
				Error: inputErr.Reason,
				Field: inputErr.Field,
			})
			return
		}
		log.Printf("Error analyzing documents: %v", err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analysis)
}

func (h *AnalysisHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
