package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/errors"
)

// ErrorResponse is the body of every failed request. A strict compile that
// dropped nodes also carries the script it produced and the diagnostics.
type ErrorResponse struct {
	Code        errors.Code           `json:"code"`
	Message     string                `json:"message"`
	RequestID   string                `json:"request_id,omitempty"`
	Output      string                `json:"output,omitempty"`
	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorBody(w, r, err, func(*ErrorResponse) {})
}

func (s *Server) respondErrorBody(w http.ResponseWriter, r *http.Request, err error, fill func(*ErrorResponse)) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	body := ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}
	fill(&body)
	s.respondJSON(w, status, body)
}

var errEmptyBody = errors.New(errors.ErrCodeInvalidInput, "request body is empty")

// decode reads a JSON body into v. Numbers stay json.Number so node
// configs keep their exact text.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errEmptyBody
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
