package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/username/business-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	directionForward  = "forward"
	directionBackward = "backward"
)

type dateResponse struct {
	Date string `json:"date"`
}

type businessDayResponse struct {
	Date        string `json:"date"`
	BusinessDay bool   `json:"business_day"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBusinessDay(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	result := s.cal.IsBusinessDay(date)

	s.logger.Debug("Business day query",
		zap.String("date", dateutil.FormatISODate(date)),
		zap.Bool("business_day", result))

	s.writeJSON(w, http.StatusOK, businessDayResponse{
		Date:        dateutil.FormatISODate(date),
		BusinessDay: result,
	})
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	var result time.Time
	switch r.URL.Query().Get("direction") {
	case directionForward, "":
		result = s.cal.RollForward(date)
	case directionBackward:
		result = s.cal.RollBackward(date)
	default:
		s.writeError(w, http.StatusBadRequest, "direction must be 'forward' or 'backward'")
		return
	}

	s.writeJSON(w, http.StatusOK, dateResponse{Date: dateutil.FormatISODate(result)})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	var result time.Time
	switch r.URL.Query().Get("direction") {
	case directionForward, "":
		result = s.cal.NextBusinessDay(date)
	case directionBackward:
		result = s.cal.PreviousBusinessDay(date)
	default:
		s.writeError(w, http.StatusBadRequest, "direction must be 'forward' or 'backward'")
		return
	}

	s.writeJSON(w, http.StatusOK, dateResponse{Date: dateutil.FormatISODate(result)})
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 0 {
		s.writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}

	var result time.Time
	switch r.URL.Query().Get("direction") {
	case directionForward, "":
		result = s.cal.AddBusinessDays(date, days)
	case directionBackward:
		result = s.cal.SubtractBusinessDays(date, days)
	default:
		s.writeError(w, http.StatusBadRequest, "direction must be 'forward' or 'backward'")
		return
	}

	s.writeJSON(w, http.StatusOK, dateResponse{Date: dateutil.FormatISODate(result)})
}

// dateParam parses the required date query parameter, writing a 400
// response when it is missing or malformed.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	value := r.URL.Query().Get("date")
	if value == "" {
		s.writeError(w, http.StatusBadRequest, "date parameter is required")
		return time.Time{}, false
	}

	date, err := dateutil.ParseISODate(value)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}

	return date, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
