package http

import (
	"net/http"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

type transactionRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Date   string `json:"date"`
}

type transactionResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Date   string `json:"date"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:     t.ID,
		Name:   t.Name,
		Amount: t.Amount.String(),
		Type:   string(t.Type),
		Date:   t.Date.ISO(),
	}
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Name:   req.Name,
		Amount: amount,
		Type:   core.TransactionType(req.Type),
		Date:   date,
	}, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.deleteTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.streams.ListTransactionsByMonth(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tx, err := req.toTransaction()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.streams.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Only the summary depends on transactions, the calendar projects
	// recurring income alone.
	s.summaryCache.Purge()
	tx.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.streams.DeleteTransaction(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.summaryCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
