package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gestorhub/caixa/internal/adapter/http/dto"
	"github.com/gestorhub/caixa/internal/usecase"
)

// TransferHandler handles transfer (aporte) HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	balanceUC  *usecase.BalanceUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, balanceUC *usecase.BalanceUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, balanceUC: balanceUC}
}

// Create executes a transfer between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.transferUC.Execute(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to execute transfer", err)
		return
	}

	h.balanceUC.InvalidateSummaries(r.Context())

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(result))
}
