package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestorhub/caixa/internal/adapter/http/dto"
	"github.com/gestorhub/caixa/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC      *usecase.EntryUseCase
	settlementUC *usecase.SettlementUseCase
	balanceUC    *usecase.BalanceUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase, settlementUC *usecase.SettlementUseCase, balanceUC *usecase.BalanceUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC, settlementUC: settlementUC, balanceUC: balanceUC}
}

// Create creates a standalone entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err)
		return
	}

	h.balanceUC.InvalidateSummaries(r.Context())

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// ListByAccount lists normalized entries for an account.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	entries, err := h.entryUC.ListEntries(r.Context(), usecase.EntryFilter{
		AccountID:   accountID,
		SettledOnly: parseBoolQuery(r, "settled_only"),
		Category:    r.URL.Query().Get("category"),
		Limit:       parseIntQuery(r, "limit", 50),
		Offset:      parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Settle marks an entry as paid or received.
func (h *EntryHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", nil)
		return
	}

	var req dto.SettleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.settlementUC.Settle(r.Context(), usecase.SettleInput{
		EntryID:   id,
		Date:      req.Date,
		AccountID: req.AccountID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle entry", err)
		return
	}

	h.balanceUC.InvalidateSummaries(r.Context())

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
