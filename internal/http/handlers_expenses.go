package http

import (
	"net/http"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

type expenseScheduleRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
	Start     string `json:"start"`
}

type expenseScheduleResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
	Start     string `json:"start"`
}

func toScheduleResponse(e core.ExpenseSchedule) expenseScheduleResponse {
	return expenseScheduleResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount.String(),
		Frequency: e.Frequency,
		Start:     e.Start.ISO(),
	}
}

func (req expenseScheduleRequest) toSchedule() (core.ExpenseSchedule, error) {
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return core.ExpenseSchedule{}, err
	}
	start, err := core.ParseDate(req.Start)
	if err != nil {
		return core.ExpenseSchedule{}, err
	}
	return core.ExpenseSchedule{
		Name:      req.Name,
		Amount:    amount,
		Frequency: req.Frequency,
		Start:     start,
	}, nil
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getExpenses(w, r)
	case http.MethodPost:
		s.createExpense(w, r)
	case http.MethodPut:
		s.updateExpense(w, r)
	case http.MethodDelete:
		s.deleteExpense(w, r)
	default:
		methodNotAllowed(w, "GET, POST, PUT, DELETE")
	}
}

func (s *Server) getExpenses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, err := parseID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		exp, err := s.streams.GetExpenseSchedule(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(exp))
		return
	}

	list, err := s.streams.ListExpenseSchedules(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]expenseScheduleResponse, 0, len(list))
	for _, exp := range list {
		out = append(out, toScheduleResponse(exp))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	exp, err := req.toSchedule()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.streams.CreateExpenseSchedule(r.Context(), exp)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateProjections()
	exp.ID = id
	writeJSON(w, http.StatusCreated, toScheduleResponse(exp))
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req expenseScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	exp, err := req.toSchedule()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	exp.ID = id

	if err := s.streams.UpdateExpenseSchedule(r.Context(), exp); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateProjections()
	writeJSON(w, http.StatusOK, toScheduleResponse(exp))
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.streams.DeleteExpenseSchedule(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateProjections()
	w.WriteHeader(http.StatusNoContent)
}
