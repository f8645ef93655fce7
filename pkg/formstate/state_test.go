package formstate_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/schema"
)

func fillScenario(t *testing.T, state *formstate.State) {
	t.Helper()
	values := map[string]any{
		"gender":         "Male",
		"age":            25.0,
		"weight":         70.0,
		"height":         175.0,
		"family_history": "yes",
		"favc":           "no",
		"fcvc":           2.0,
		"ncp":            3.0,
		"caec":           "Sometimes",
		"smoke":          "no",
		"ch2o":           2.0,
		"scc":            "no",
		"faf":            1.0,
		"tue":            1.0,
		"calc":           "no",
		"mtrans":         "Public_Transportation",
	}
	for name, value := range values {
		if err := state.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func TestNewSeedsControlDefaults(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())

	checks := map[string]any{
		"gender": "Male",
		"height": 145.0,
		"weight": 0.0,
		"fcvc":   1.0,
		"mtrans": "Public_Transportation",
	}
	for name, want := range checks {
		got, ok := state.Get(name)
		if !ok {
			t.Fatalf("%s not seeded", name)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s default mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestWithoutDefaultsRejectsEmptySubmission(t *testing.T) {
	s := schema.ObesitySchema()
	state := formstate.New(s, formstate.WithoutDefaults())

	_, err := state.Submit()
	var verr *formstate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != s.Len() {
		t.Fatalf("expected %d field errors, got %d", s.Len(), len(verr.Fields))
	}
	if state.ErrorFor("gender") != "is required" {
		t.Fatalf("unexpected gender error %q", state.ErrorFor("gender"))
	}
}

func TestSubmitScenarioProducesRequest(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())
	fillScenario(t, state)

	req, err := state.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(state.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", state.Errors())
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["height"] != 175.0 || decoded["mtrans"] != "Public_Transportation" {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestSubmitReportsOnlyInvalidField(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())
	fillScenario(t, state)
	if err := state.Set("height", 120.0); err != nil {
		t.Fatalf("set height: %v", err)
	}

	_, err := state.Submit()
	var verr *formstate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]string{"height": "must be at least 145"}
	if diff := cmp.Diff(want, verr.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if err := state.Set("height", 180.0); err != nil {
		t.Fatalf("set height: %v", err)
	}
	if _, err := state.Submit(); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if state.ErrorFor("height") != "" {
		t.Fatalf("expected height error cleared")
	}
}

func TestSubmitRejectsValueOutsideChoices(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())
	fillScenario(t, state)
	_ = state.Set("fcvc", 2.5)

	if _, err := state.Submit(); err == nil {
		t.Fatalf("expected validation failure for fcvc")
	}
	if state.ErrorFor("fcvc") == "" {
		t.Fatalf("expected fcvc error recorded")
	}
}

func TestSetInputCoercesNumbers(t *testing.T) {
	s := schema.ObesitySchema()
	state := formstate.New(s)

	if err := state.SetInput("weight", " 72.5 "); err != nil {
		t.Fatalf("set input: %v", err)
	}
	if got, _ := state.Get("weight"); got != 72.5 {
		t.Fatalf("expected 72.5, got %#v", got)
	}

	_ = state.SetInput("age", "abc")
	if got, _ := state.Get("age"); got != "abc" {
		t.Fatalf("expected raw input kept, got %#v", got)
	}
	_, _ = state.Submit()
	if state.ErrorFor("age") != "must be a number" {
		t.Fatalf("unexpected age error %q", state.ErrorFor("age"))
	}

	_ = state.SetInput("gender", "Female")
	if got, _ := state.Get("gender"); got != "Female" {
		t.Fatalf("expected Female, got %#v", got)
	}

	if err := state.SetInput("bmi", "22"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestUnsetMakesFieldRequiredAgain(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())
	fillScenario(t, state)

	state.Unset("caec")
	if _, ok := state.Get("caec"); ok {
		t.Fatalf("expected caec to be cleared")
	}
	state.Unset("bmi")

	_, err := state.Submit()
	var verr *formstate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if diff := cmp.Diff(map[string]string{"caec": "is required"}, verr.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	state := formstate.New(schema.ObesitySchema())
	values := state.Values()
	values["gender"] = "Female"
	if got, _ := state.Get("gender"); got != "Male" {
		t.Fatalf("state mutated through Values copy: %v", got)
	}
}

func TestWithValuesPrefill(t *testing.T) {
	state := formstate.New(schema.ObesitySchema(), formstate.WithValues(map[string]any{
		"gender":  "Female",
		"unknown": 1,
	}))
	if got, _ := state.Get("gender"); got != "Female" {
		t.Fatalf("expected prefilled gender, got %v", got)
	}
	if _, ok := state.Get("unknown"); ok {
		t.Fatalf("unknown names must be ignored")
	}
}
