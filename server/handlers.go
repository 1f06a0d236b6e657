package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/rs/zerolog"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "pst",
	})
}

// handleForm serves the empty dashboard.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, renderer.Page{
		Title:  "Portfolio Analysis",
		Header: formHTML(defaultForm(), ""),
		Body:   "<p>Type the amounts invested in each ticker, a benchmark and a date range.</p>",
	})
}

// handleReport serves the HTML report of the analysis described in the query.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	f := formOf(r.URL.Query())
	if f.IsZero() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a, err := s.analyze(r, f)
	if err != nil {
		s.writePage(w, statusOf(err), renderer.Page{
			Title:  "Portfolio Analysis",
			Header: formHTML(f, tracker.Describe(err)),
		})
		return
	}

	report := renderer.NewReport(a)
	body, err := renderer.ToHTML(renderer.RenderReport(report))
	if err != nil {
		s.writePage(w, http.StatusInternalServerError, renderer.Page{
			Title:  "Portfolio Analysis",
			Header: formHTML(f, tracker.Describe(err)),
		})
		return
	}
	s.writePage(w, http.StatusOK, renderer.Page{
		Title:  fmt.Sprintf("Portfolio Report from %s to %s", a.Request.Window.From, a.Request.Window.To),
		Header: formHTML(f, ""),
		Body:   body,
	})
}

// handleAnalysis serves the analysis as JSON. The input is read from the query
// string, or from a JSON Form in the body of POST requests.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	f := formOf(r.URL.Query())
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			s.writeError(w, fmt.Errorf("invalid JSON body: %v: %w", err, tracker.ErrMalformedInput))
			return
		}
	}

	a, err := s.analyze(r, f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) analyze(r *http.Request, f Form) (*tracker.Analysis, error) {
	req, err := f.Request(s.currency)
	if err != nil {
		return nil, err
	}
	a, err := tracker.Analyze(r.Context(), s.provider, req)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("portfolio", req.Portfolio.String()).Msg("analysis failed")
		return nil, err
	}
	return a, nil
}

// statusOf returns the HTTP status reporting err.
func statusOf(err error) int {
	switch {
	case errors.Is(err, tracker.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrDataUnavailable),
		errors.Is(err, tracker.ErrInsufficientData),
		errors.Is(err, tracker.ErrDegenerateValuation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusOf(err), map[string]string{
		"error":  tracker.Describe(err),
		"detail": err.Error(),
	})
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writePage(w http.ResponseWriter, status int, p renderer.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderer.WriteHTML(w, p); err != nil {
		s.log.Error().Err(err).Msg("Failed to write HTML page")
	}
}
