package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/schema"
)

func TestBuilderObesityForm(t *testing.T) {
	form, err := model.NewBuilder(model.WithAction("/predict", "post")).Build(schema.ObesitySchema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Method != "POST" || form.Endpoint != "/predict" {
		t.Fatalf("unexpected action %s %s", form.Method, form.Endpoint)
	}
	if len(form.Fields) != 16 {
		t.Fatalf("expected 16 fields, got %d", len(form.Fields))
	}

	mtrans, ok := form.Field("mtrans")
	if !ok {
		t.Fatalf("mtrans field missing")
	}
	if mtrans.Control != model.ControlSelect {
		t.Fatalf("mtrans should be a select, got %s", mtrans.Control)
	}
	wantMtrans := []model.Option{
		{Value: "Public_Transportation", Label: "Public Transportation"},
		{Value: "Automobile", Label: "Automobile"},
		{Value: "Walking", Label: "Walking"},
		{Value: "Motorbike", Label: "Motorbike"},
		{Value: "Bike", Label: "Bike"},
	}
	if diff := cmp.Diff(wantMtrans, mtrans.Options); diff != "" {
		t.Fatalf("mtrans options mismatch (-want +got):\n%s", diff)
	}

	fcvc, _ := form.Field("fcvc")
	if fcvc.Type != model.FieldTypeNumber || fcvc.Control != model.ControlSelect {
		t.Fatalf("fcvc should be a numeric select, got %s/%s", fcvc.Type, fcvc.Control)
	}
	if diff := cmp.Diff([]model.Option{{Value: "1", Label: "1"}, {Value: "2", Label: "2"}, {Value: "3", Label: "3"}}, fcvc.Options); diff != "" {
		t.Fatalf("fcvc options mismatch (-want +got):\n%s", diff)
	}

	height, _ := form.Field("height")
	if height.Control != model.ControlNumber {
		t.Fatalf("height should be a number input, got %s", height.Control)
	}
	wantRules := []model.ValidationRule{
		{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "145"}},
		{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "198"}},
		{Kind: model.ValidationRuleStep, Params: map[string]string{"value": "0.01"}},
	}
	if diff := cmp.Diff(wantRules, height.Validations); diff != "" {
		t.Fatalf("height rules mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderSectionsFollowSchemaGroups(t *testing.T) {
	s := schema.ObesitySchema()
	form, err := model.NewBuilder().Build(s)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var titles []string
	total := 0
	for _, section := range form.Sections {
		titles = append(titles, section.Title)
		total += len(section.Fields)
	}
	if diff := cmp.Diff(s.Groups(), titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}
	if total != s.Len() {
		t.Fatalf("sections cover %d fields, want %d", total, s.Len())
	}
}

func TestBuilderCustomOptionLabeler(t *testing.T) {
	s := schema.MustNew("custom", schema.Enumerated("calc", []string{"no", "Always"}))
	form, err := model.NewBuilder(model.WithOptionLabeler(func(v string) string { return "[" + v + "]" })).Build(s)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []model.Option{{Value: "no", Label: "[no]"}, {Value: "Always", Label: "[Always]"}}
	if diff := cmp.Diff(want, form.Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if form.Fields[0].Label != "Calc" {
		t.Fatalf("expected derived field label, got %q", form.Fields[0].Label)
	}
}
