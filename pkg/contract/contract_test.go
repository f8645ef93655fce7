package contract_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/internal/source/loader"
	"github.com/goliatone/go-obesense/pkg/contract"
	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/source"
	"github.com/goliatone/go-obesense/pkg/testsupport"
)

func defaultContract(t *testing.T) *contract.Contract {
	t.Helper()
	c, err := contract.Default(context.Background())
	if err != nil {
		t.Fatalf("default contract: %v", err)
	}
	return c
}

func TestDefaultContractDescribesPredictOperation(t *testing.T) {
	c := defaultContract(t)
	if c.Path() != "/predict" || c.Method() != "POST" {
		t.Fatalf("unexpected operation %s %s", c.Method(), c.Path())
	}

	var want []string
	for _, category := range predict.Categories() {
		want = append(want, category.String())
	}
	if diff := cmp.Diff(want, c.Categories()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckAcceptsObesitySchema(t *testing.T) {
	if err := defaultContract(t).Check(schema.ObesitySchema()); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestCheckReportsMismatches(t *testing.T) {
	s := schema.MustNew("partial",
		schema.Enumerated("gender", []string{"Male", "Female", "Other"}),
		schema.Numeric("bmi"),
	)
	err := defaultContract(t).Check(s)
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
	for _, want := range []string{`field "bmi" is not in the request body`, `field "gender" allows`, `request property "mtrans" is not in the schema`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	c := defaultContract(t)
	if err := c.ValidateRequest(testsupport.ScenarioRequest(t)); err != nil {
		t.Fatalf("validate request: %v", err)
	}
}

func TestValidatePrediction(t *testing.T) {
	c := defaultContract(t)
	for _, label := range []string{"Overweight Level I", "Obesity_Type_III"} {
		if err := c.ValidatePrediction(label); err != nil {
			t.Fatalf("validate %q: %v", label, err)
		}
	}
	if err := c.ValidatePrediction("Athletic"); err == nil {
		t.Fatalf("expected unknown label to fail")
	}
}

func TestLoadFromSource(t *testing.T) {
	files := fstest.MapFS{"contract.yaml": {Data: contract.Document()}}
	l := loader.New(source.NewLoaderOptions(source.WithFileSystem(files)))

	c, err := contract.Load(context.Background(), l, source.FromFS("contract.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title() != "Obesity prediction service" {
		t.Fatalf("unexpected title %q", c.Title())
	}
}

func TestParseRejectsDocumentsWithoutPrediction(t *testing.T) {
	doc := []byte(`
openapi: 3.0.3
info: {title: empty, version: "1"}
paths:
  /health:
    get:
      responses:
        "200": {description: ok}
`)
	if _, err := contract.Parse(context.Background(), doc); err == nil {
		t.Fatalf("expected error without a POST operation")
	}
}
