package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-obesense/pkg/formstate"
	"github.com/goliatone/go-obesense/pkg/schema"
)

// ScenarioValues returns a complete, valid set of obesity attributes. Each
// call returns a fresh map so tests can mutate it.
func ScenarioValues() map[string]any {
	return map[string]any{
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
}

// ScenarioRequest validates ScenarioValues against the obesity schema.
func ScenarioRequest(t *testing.T) schema.Request {
	t.Helper()

	req, err := schema.NewRequest(schema.ObesitySchema(), ScenarioValues())
	if err != nil {
		t.Fatalf("scenario request: %v", err)
	}
	return req
}

// FillScenario writes ScenarioValues into state.
func FillScenario(t *testing.T, state *formstate.State) {
	t.Helper()

	for name, value := range ScenarioValues() {
		if err := state.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
