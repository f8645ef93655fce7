package result_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/result"
)

func TestExplainCoversEveryCategory(t *testing.T) {
	seen := make(map[string]bool)
	for _, category := range predict.Categories() {
		sentence := result.Explain(category)
		if sentence == "" {
			t.Fatalf("missing explanation for %s", category)
		}
		if seen[sentence] {
			t.Fatalf("duplicate explanation for %s", category)
		}
		seen[sentence] = true
	}
}

func TestExplainAcceptsUnderscoreSpelling(t *testing.T) {
	if result.Explain("Overweight_Level_I") != result.Explain(predict.OverweightLevelI) {
		t.Fatalf("underscore spelling should share the explanation")
	}
	if got := result.Explain("Athletic"); got != "" {
		t.Fatalf("unknown category should have no explanation, got %q", got)
	}
}

func TestPresent(t *testing.T) {
	got := result.Present("Obesity_Type_II")
	want := result.Presentation{
		Label:       "Obesity Type II",
		Explanation: result.Explain(predict.ObesityTypeII),
		Known:       true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("presentation mismatch (-want +got):\n%s", diff)
	}

	unknown := result.Present("Athletic")
	if diff := cmp.Diff(result.Presentation{Label: "Athletic"}, unknown); diff != "" {
		t.Fatalf("unknown presentation mismatch (-want +got):\n%s", diff)
	}
}

func TestFailure(t *testing.T) {
	failure := result.Failure()
	if !failure.Failed || failure.Label != "" || failure.Explanation != result.FailureMessage {
		t.Fatalf("unexpected failure presentation %+v", failure)
	}
}
