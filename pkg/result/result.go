// Package result turns a predicted category into the text shown to the user.
package result

import (
	"github.com/goliatone/go-obesense/pkg/predict"
)

// FailureMessage is shown for any failed prediction, whatever the cause.
const FailureMessage = "We could not get a prediction right now. Please try again in a moment."

var explanations = map[predict.Category]string{
	predict.InsufficientWeight: "Your body weight is below the healthy range for your height. A balanced diet with enough energy and protein can help you reach a healthier weight.",
	predict.NormalWeight:       "Your body weight is within the healthy range for your height. Keep up your current eating and activity habits.",
	predict.OverweightLevelI:   "Your body weight is slightly above the healthy range. Small changes such as more daily movement and fewer high calorie snacks can bring it back down.",
	predict.OverweightLevelII:  "Your body weight is clearly above the healthy range. Regular physical activity and a closer look at portion sizes are recommended.",
	predict.ObesityTypeI:       "Your body weight is in the first obesity range, which raises the risk of heart and metabolic disease. Consider talking to a health professional about a plan.",
	predict.ObesityTypeII:      "Your body weight is in the second obesity range, with a high risk of related health problems. Medical guidance on diet and activity is strongly advised.",
	predict.ObesityTypeIII:     "Your body weight is in the most severe obesity range, with a very high risk of serious health problems. Please seek support from a health professional.",
}

// Presentation is the rendered outcome of a prediction.
type Presentation struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
	Known       bool   `json:"known"`
	Failed      bool   `json:"failed,omitempty"`
}

// Explain returns the fixed sentence for category in either spelling, or ""
// for labels outside the known set.
func Explain(category predict.Category) string {
	canonical, ok := predict.Normalize(string(category))
	if !ok {
		return ""
	}
	return explanations[canonical]
}

// Present builds the presentation for a successful prediction. Unknown labels
// are shown bare, without an explanation.
func Present(category predict.Category) Presentation {
	canonical, ok := predict.Normalize(string(category))
	if !ok {
		return Presentation{Label: canonical.String()}
	}
	return Presentation{
		Label:       canonical.String(),
		Explanation: explanations[canonical],
		Known:       true,
	}
}

// Failure builds the presentation shown when a prediction fails.
func Failure() Presentation {
	return Presentation{Explanation: FailureMessage, Failed: true}
}
