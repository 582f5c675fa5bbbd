package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-expenses-tracker/expenses"
	"github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/sheets"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 64 << 10

type profileResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

type indexResponse struct {
	User   profileResponse `json:"user"`
	Period string          `json:"period"`
}

type expensesResponse struct {
	Period        string           `json:"period"`
	SpreadsheetID string           `json:"spreadsheetId"`
	Summary       map[string]any   `json:"summary"`
	Entries       []map[string]any `json:"entries"`
}

// IndexHandler returns the signed-in profile and the current period key.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteAuthLogin, http.StatusFound)
			return
		}
		writeJSON(w, http.StatusOK, indexResponse{
			User: profileResponse{
				ID:      user.ID,
				Email:   user.Email,
				Name:    user.Name,
				Picture: user.Picture,
			},
			Period: s.currentPeriod(),
		})
	}
}

func (s *Server) ExpensesGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessor, err := s.openAccessor(r)
		if err != nil {
			writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
			return
		}

		data, err := accessor.GetAllData(r.Context())
		if err != nil {
			log.Error().Err(err).Str("period", accessor.Period()).Msg("[ExpensesGetHandler] read")
			writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, expensesResponse{
			Period:        accessor.Period(),
			SpreadsheetID: accessor.SpreadsheetID(),
			Summary:       data.Summary,
			Entries:       data.Entries,
		})
	}
}

// SummaryPatchHandler writes the summary fields named in the JSON body.
func (s *Server) SummaryPatchHandler() http.HandlerFunc {
	return s.writeHandler("SummaryPatchHandler", func(r *http.Request, accessor *sheets.Accessor, body map[string]any) error {
		return accessor.UpdateValues(r.Context(), body)
	})
}

// EntryPostHandler appends one ledger row built from the JSON body.
func (s *Server) EntryPostHandler() http.HandlerFunc {
	return s.writeHandler("EntryPostHandler", func(r *http.Request, accessor *sheets.Accessor, body map[string]any) error {
		return accessor.Append(r.Context(), body)
	})
}

func (s *Server) writeHandler(name string, write func(*http.Request, *sheets.Accessor, map[string]any) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			err = errors.Wrapf(errors.ErrInvalidRequest, "decoding body: %v", err)
			writeJSON(w, http.StatusBadRequest, map[string][]string{"errors": {err.Error()}})
			return
		}

		accessor, err := s.openAccessor(r)
		if err != nil {
			writeJSON(w, errorStatus(err), map[string][]string{"errors": {err.Error()}})
			return
		}

		if err := write(r, accessor, body); err != nil {
			log.Error().Err(err).Str("period", accessor.Period()).Msgf("[%s] write", name)
			writeJSON(w, errorStatus(err), map[string][]string{"errors": {err.Error()}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// openAccessor binds the sheets factory to the session user and the requested
// period, provisioning the spreadsheet and worksheet on the way.
func (s *Server) openAccessor(r *http.Request) (*sheets.Accessor, error) {
	user, ok := userFromContext(r.Context())
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	period := r.PathValue("period")
	if period == "" {
		period = s.currentPeriod()
	}

	accessor, err := s.sheets.Open(r.Context(), s.userTokenSource(r, user), period)
	if err != nil {
		return nil, fmt.Errorf("[Server openAccessor] %w", err)
	}
	return accessor, nil
}

func (s *Server) currentPeriod() string {
	return expenses.PeriodKey(s.now(), s.config.GetPeriodFormat())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidPeriod), errors.Is(err, errors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrSessionNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
