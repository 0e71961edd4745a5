package http

import (
	"net/http"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

type monthSummaryResponse struct {
	Year                int    `json:"year"`
	Month               int    `json:"month"`
	RecurringIncome     string `json:"recurring_income"`
	RecurringExpenses   string `json:"recurring_expenses"`
	TransactionIncome   string `json:"transaction_income"`
	TransactionExpenses string `json:"transaction_expenses"`
	Balance             string `json:"balance"`
}

func toSummaryResponse(s core.MonthSummary) monthSummaryResponse {
	return monthSummaryResponse{
		Year:                s.Year,
		Month:               s.Month,
		RecurringIncome:     s.RecurringIncome.String(),
		RecurringExpenses:   s.RecurringExpenses.String(),
		TransactionIncome:   s.TransactionIncome.String(),
		TransactionExpenses: s.TransactionExpenses.String(),
		Balance:             s.Balance.String(),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	year, month, err := parseMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.summaryKey(year, month)
	if summary, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toSummaryResponse(summary))
		return
	}

	summary, err := s.reports.MonthSummary(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

type paydayResponse struct {
	StreamID int64  `json:"stream_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	start, end, err := parseRangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := start.ISO() + "_" + end.ISO()
	paydays, ok := s.calendarCache.Get(key)
	if !ok {
		paydays, err = s.reports.PaydayCalendar(r.Context(), start, end)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.calendarCache.Set(key, paydays)
	}

	out := make([]paydayResponse, 0, len(paydays))
	for _, p := range paydays {
		out = append(out, paydayResponse{
			StreamID: p.StreamID,
			Name:     p.Name,
			Date:     p.Date.ISO(),
			Amount:   p.Amount.String(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type nextPayResponse struct {
	StreamID int64  `json:"stream_id"`
	Date     string `json:"date"`
	Upcoming bool   `json:"upcoming"`
}

func (s *Server) handleNextPays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	next, err := s.reports.NextPayDates(r.Context(), core.Today())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Optional ?id= narrows the answer to one stream.
	if r.URL.Query().Get("id") != "" {
		id, err := parseID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, n := range next {
			if n.StreamID == id {
				writeJSON(w, http.StatusOK, nextPayResponse{
					StreamID: n.StreamID,
					Date:     n.Date.ISO(),
					Upcoming: n.Upcoming,
				})
				return
			}
		}
		writeServiceError(w, r, core.ErrStreamNotFound)
		return
	}

	out := make([]nextPayResponse, 0, len(next))
	for _, n := range next {
		out = append(out, nextPayResponse{
			StreamID: n.StreamID,
			Date:     n.Date.ISO(),
			Upcoming: n.Upcoming,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
