package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-obesense/pkg/result"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitizeText strips markup from text that originates outside the process,
// such as labels returned by the prediction service. The result is plain text;
// the template engine escapes it on output.
func sanitizeText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(raw)))
}

type resultView struct {
	Label       string `json:"label,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Known       bool   `json:"known"`
	Failed      bool   `json:"failed"`
}

func buildResult(presentation *result.Presentation) *resultView {
	if presentation == nil {
		return nil
	}
	return &resultView{
		Label:       sanitizeText(presentation.Label),
		Explanation: sanitizeText(presentation.Explanation),
		Known:       presentation.Known,
		Failed:      presentation.Failed,
	}
}
