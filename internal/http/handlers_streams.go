package http

import (
	"net/http"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

type incomeStreamRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
	Anchor    string `json:"anchor"`
}

type incomeStreamResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
	Anchor    string `json:"anchor"`
}

func toStreamResponse(s core.IncomeStream) incomeStreamResponse {
	return incomeStreamResponse{
		ID:        s.ID,
		Name:      s.Name,
		Amount:    s.Amount.String(),
		Frequency: s.Frequency,
		Anchor:    s.Anchor.ISO(),
	}
}

func (req incomeStreamRequest) toStream() (core.IncomeStream, error) {
	amount, err := core.ParseMoney(req.Amount)
	if err != nil {
		return core.IncomeStream{}, err
	}
	anchor, err := core.ParseDate(req.Anchor)
	if err != nil {
		return core.IncomeStream{}, err
	}
	return core.IncomeStream{
		Name:      req.Name,
		Amount:    amount,
		Frequency: req.Frequency,
		Anchor:    anchor,
	}, nil
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getStreams(w, r)
	case http.MethodPost:
		s.createStream(w, r)
	case http.MethodPut:
		s.updateStream(w, r)
	case http.MethodDelete:
		s.deleteStream(w, r)
	default:
		methodNotAllowed(w, "GET, POST, PUT, DELETE")
	}
}

func (s *Server) getStreams(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, err := parseID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		stream, err := s.streams.GetIncomeStream(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toStreamResponse(stream))
		return
	}

	list, err := s.streams.ListIncomeStreams(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]incomeStreamResponse, 0, len(list))
	for _, stream := range list {
		out = append(out, toStreamResponse(stream))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createStream(w http.ResponseWriter, r *http.Request) {
	var req incomeStreamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stream, err := req.toStream()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.streams.CreateIncomeStream(r.Context(), stream)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateProjections()
	stream.ID = id
	writeJSON(w, http.StatusCreated, toStreamResponse(stream))
}

func (s *Server) updateStream(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req incomeStreamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stream, err := req.toStream()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	stream.ID = id

	if err := s.streams.UpdateIncomeStream(r.Context(), stream); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateProjections()
	writeJSON(w, http.StatusOK, toStreamResponse(stream))
}

func (s *Server) deleteStream(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.streams.DeleteIncomeStream(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidateProjections()
	w.WriteHeader(http.StatusNoContent)
}
