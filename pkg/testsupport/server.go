package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Responder writes the fake service's reply for one request.
type Responder func(w http.ResponseWriter, r *http.Request)

// Prediction replies with {"prediction": label}.
func Prediction(label string) Responder {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"prediction": label})
	}
}

// BareLabel replies with the label as a JSON string, the legacy backend shape.
func BareLabel(label string) Responder {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(label)
	}
}

// Raw replies with status and body verbatim.
func Raw(status int, body string) Responder {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// RecordedRequest captures what the fake service received.
type RecordedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Body    []byte
	Payload map[string]any
}

// PredictionServer is an httptest-backed stand-in for the remote prediction
// service.
type PredictionServer struct {
	*httptest.Server

	mu        sync.Mutex
	responder Responder
	requests  []RecordedRequest
}

// NewPredictionServer starts a fake service and closes it when the test ends.
func NewPredictionServer(t *testing.T, responder Responder) *PredictionServer {
	t.Helper()

	srv := &PredictionServer{responder: responder}
	srv.Server = httptest.NewServer(http.HandlerFunc(srv.handle))
	t.Cleanup(srv.Close)
	return srv
}

// Respond swaps the responder for subsequent requests.
func (s *PredictionServer) Respond(responder Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = responder
}

// Requests returns the requests received so far.
func (s *PredictionServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *PredictionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	record := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	}
	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		record.Payload = payload
	}

	s.mu.Lock()
	s.requests = append(s.requests, record)
	responder := s.responder
	s.mu.Unlock()

	if responder == nil {
		responder = Prediction("Normal Weight")
	}
	responder(w, r)
}
