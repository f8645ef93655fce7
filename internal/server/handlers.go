package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/result"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/session"
)

// submittedOnly starts submission sessions empty so absent fields are
// reported instead of silently taking defaults.
var submittedOnly = session.WithStateOptions(formstate.WithoutDefaults())

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, err := s.newSession()
	if err != nil {
		s.fail(w, r, "session", err)
		return
	}
	s.renderHTML(w, r, sess, http.StatusOK)
}

// handleSubmit replays the posted controls into a fresh session and renders
// the form again with errors or the prediction.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	sess, err := s.newSession(submittedOnly)
	if err != nil {
		s.fail(w, r, "session", err)
		return
	}
	for _, name := range s.schema.Names() {
		if _, ok := r.PostForm[name]; !ok {
			continue
		}
		if err := sess.SetInput(name, r.PostForm.Get(name)); err != nil {
			s.fail(w, r, "set input", err)
			return
		}
	}

	status := http.StatusOK
	if _, err := sess.Submit(r.Context()); err != nil {
		var invalid *formstate.ValidationError
		if errors.As(err, &invalid) {
			status = http.StatusUnprocessableEntity
		}
	}
	s.renderHTML(w, r, sess, status)
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	body, contentType, err := sess.Render(r.Context(), "")
	if err != nil {
		s.fail(w, r, "render", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// handleAPIPredict accepts a JSON attribute object and answers with the
// presentation of the predicted category.
func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "request body too large"})
		return
	}

	sess, err := s.newSession(submittedOnly)
	if err != nil {
		s.fail(w, r, "session", err)
		return
	}

	var values map[string]any
	if err := json.Unmarshal(payload, &values); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "body must be a JSON object"})
		return
	}
	for name, value := range values {
		if _, ok := s.schema.Field(name); !ok {
			writeJSON(w, http.StatusUnprocessableEntity, apiError{
				Error:  "unknown attribute",
				Fields: map[string]string{name: "is not an attribute"},
			})
			return
		}
		if err := sess.Set(name, value); err != nil {
			s.fail(w, r, "set value", err)
			return
		}
	}

	if s.contract != nil {
		if req, err := schema.DecodeRequest(s.schema, payload); err == nil {
			if err := s.contract.ValidateRequest(req); err != nil {
				writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: err.Error()})
				return
			}
		}
	}

	presentation, err := sess.Submit(r.Context())
	var invalid *formstate.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, presentation)
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "invalid attributes", Fields: invalid.Fields})
	case errors.Is(err, predict.ErrNetwork), errors.Is(err, predict.ErrResponseShape):
		writeJSON(w, http.StatusBadGateway, result.Failure())
	default:
		s.logger.Error("prediction failed", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, result.Failure())
	}
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	if s.contract == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.contract.Raw())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, stage string, err error) {
	s.logger.Error("request failed",
		zap.String("stage", stage),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
