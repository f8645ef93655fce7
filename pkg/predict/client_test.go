package predict_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/testsupport"
)

func newClient(t *testing.T, srv *testsupport.PredictionServer, options ...predict.Option) *predict.Client {
	t.Helper()
	options = append([]predict.Option{predict.WithHTTPClient(srv.Client())}, options...)
	client, err := predict.NewClient(srv.URL, options...)
	require.NoError(t, err)
	return client
}

func TestClientPostsRequestWithHeaders(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Prediction("Overweight Level I"))
	client := newClient(t, srv, predict.WithRequestIDs(func() string { return "req-1" }))

	category, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, predict.OverweightLevelI, category)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	got := requests[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, predict.DefaultPath, got.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "req-1", got.Header.Get(predict.RequestIDHeader))

	keys := make([]string, 0, len(got.Payload))
	for key := range got.Payload {
		keys = append(keys, key)
	}
	assert.ElementsMatch(t, schema.ObesitySchema().Names(), keys)
	assert.Equal(t, 175.0, got.Payload["height"])
	assert.Equal(t, "Public_Transportation", got.Payload["mtrans"])
}

func TestClientCustomPath(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Prediction("Normal Weight"))
	client := newClient(t, srv, predict.WithPath("api/predict"))

	_, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "/api/predict", srv.Requests()[0].Path)
	assert.Equal(t, srv.URL+"/api/predict", client.Endpoint())
}

func TestClientKeepsUnderscoreLabels(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Prediction("Normal_Weight"))
	client := newClient(t, srv)

	category, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, predict.Category("Normal_Weight"), category)
	assert.True(t, category.Known())
}

func TestClientPassesUnknownLabelsThrough(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Prediction("Athletic"))
	client := newClient(t, srv)

	category, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, predict.Category("Athletic"), category)
	assert.False(t, category.Known())
}

func TestClientNetworkErrors(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Raw(http.StatusInternalServerError, `{"prediction":"Normal Weight"}`))
	client := newClient(t, srv)

	_, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, predict.ErrNetwork))
	var netErr *predict.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusInternalServerError, netErr.Status)
	assert.Len(t, srv.Requests(), 1, "no retry expected")
}

func TestClientUnreachableService(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, nil)
	url := srv.URL
	srv.Close()

	client, err := predict.NewClient(url)
	require.NoError(t, err)
	_, err = client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	assert.ErrorIs(t, err, predict.ErrNetwork)
}

func TestClientResponseShapeErrors(t *testing.T) {
	cases := map[string]testsupport.Responder{
		"empty body":       testsupport.Raw(http.StatusOK, ""),
		"missing field":    testsupport.Raw(http.StatusOK, `{"label":"Normal Weight"}`),
		"empty prediction": testsupport.Raw(http.StatusOK, `{"prediction":""}`),
		"non string":       testsupport.Raw(http.StatusOK, `{"prediction":3}`),
		"array":            testsupport.Raw(http.StatusOK, `["Normal Weight"]`),
		"bare label":       testsupport.BareLabel("Normal Weight"),
		"html":             testsupport.Raw(http.StatusOK, "<html></html>"),
	}
	for name, responder := range cases {
		t.Run(name, func(t *testing.T) {
			srv := testsupport.NewPredictionServer(t, responder)
			client := newClient(t, srv)

			_, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, predict.ErrResponseShape)
			assert.False(t, errors.Is(err, predict.ErrNetwork))
		})
	}
}

func TestClientBareLabelResponses(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.BareLabel("Obesity_Type_II"))
	client := newClient(t, srv, predict.WithBareLabelResponses())

	category, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, predict.Category("Obesity_Type_II"), category)

	srv.Respond(testsupport.Raw(http.StatusOK, "Insufficient_Weight\n"))
	category, err = client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	require.NoError(t, err)
	assert.Equal(t, predict.Category("Insufficient_Weight"), category)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := testsupport.NewPredictionServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	client := newClient(t, srv, predict.WithTimeout(20*time.Millisecond))

	_, err := client.Predict(context.Background(), testsupport.ScenarioRequest(t))
	assert.ErrorIs(t, err, predict.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	_, err := predict.NewClient("")
	assert.Error(t, err)
	_, err = predict.NewClient("ftp://example.com")
	assert.Error(t, err)
	_, err = predict.NewClient("http://localhost:5000/")
	assert.NoError(t, err)
}
