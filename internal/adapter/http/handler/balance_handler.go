package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhub/caixa/internal/adapter/http/dto"
	"github.com/gestorhub/caixa/internal/usecase"
)

// BalanceHandler exposes computed balances, summaries and previews.
type BalanceHandler struct {
	balanceUC *usecase.BalanceUseCase
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// AccountBalance returns the balance summary of one account.
func (h *BalanceHandler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	summary, err := h.balanceUC.AccountSummary(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(*summary))
}

// ListSummaries returns balance summaries for every account.
func (h *BalanceHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.balanceUC.ListSummaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummariesFromDomain(summaries))
}

// Preview projects the balance after a draft entry without persisting it.
func (h *BalanceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	projected, err := h.balanceUC.Preview(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: req.AccountID,
		Balance:   projected.StringFixed(2),
	})
}
