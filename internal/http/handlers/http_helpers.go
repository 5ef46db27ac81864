package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hay-kot/criterio"

	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// WriteError writes the {"error": msg} body used by every failure response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) respond(w http.ResponseWriter, status int, data any, headers ...http.Header) {
	if err := writeJSON(w, status, data, headers...); err != nil {
		s.log.Error().Err(err).Msg("failed to write response")
	}
}

// writeServiceError maps engine errors onto HTTP statuses. Storage details
// are logged by the engine and never reach the client.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var fieldErrs criterio.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		s.respond(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Validation failed",
			Fields: toValidationErrors(fieldErrs),
		})
	case errors.Is(err, inventory.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, inventory.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Item not found")
	default:
		if !errors.Is(err, inventory.ErrStorage) {
			s.log.Error().Err(err).Msg("unexpected service error")
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
