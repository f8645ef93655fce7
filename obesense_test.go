package obesense

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/result"
	"github.com/goliatone/go-obesense/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "obesense.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".obs-form") {
		t.Fatalf("expected form styles in stylesheet")
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestRenderHTMLAppliesOverlayCopy(t *testing.T) {
	out, err := RenderHTML(context.Background(), map[string]any{"gender": "Female"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<legend>About you</legend>`,
		`<option value="Female" selected>Female</option>`,
		"1 = never, 2 = sometimes, 3 = always.",
		`<p class="obs-lead">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in:\n%s", want, html)
		}
	}
}

func TestPredict(t *testing.T) {
	srv := testsupport.NewPredictionServer(t, testsupport.Prediction("Insufficient_Weight"))

	got, err := Predict(context.Background(), srv.URL, testsupport.ScenarioValues())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got != result.Present(predict.InsufficientWeight) {
		t.Fatalf("unexpected presentation %+v", got)
	}

	values := testsupport.ScenarioValues()
	values["height"] = 220.0
	_, err = Predict(context.Background(), srv.URL, values)
	var invalid *formstate.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := len(srv.Requests()); got != 1 {
		t.Fatalf("invalid input must not reach the service, got %d requests", got)
	}
}
