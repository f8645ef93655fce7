// Package contract describes the prediction service's HTTP interface as an
// OpenAPI document and checks attribute schemas and payloads against it.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-obesense/pkg/predict"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/source"
)

// OperationID names the prediction operation inside the document.
const OperationID = "predict"

//go:embed openapi.yaml
var embeddedDocument []byte

// Document returns the embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), embeddedDocument...)
}

// Contract is a parsed prediction operation.
type Contract struct {
	spec       *openapi3.T
	raw        []byte
	path       string
	method     string
	request    *openapi3.Schema
	prediction *openapi3.Schema
}

// Default parses the embedded document.
func Default(ctx context.Context) (*Contract, error) {
	return Parse(ctx, embeddedDocument)
}

// Load reads a document through loader and parses it.
func Load(ctx context.Context, loader source.Loader, src source.Source) (*Contract, error) {
	if loader == nil || src == nil {
		return nil, errors.New("contract: loader and source are required")
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("contract: load %s: %w", src.Location(), err)
	}
	return Parse(ctx, doc.Raw())
}

// Parse validates raw as an OpenAPI 3 document and extracts the prediction
// operation: the one whose operationId is "predict", otherwise the only POST.
func Parse(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	path, operation, err := findOperation(spec)
	if err != nil {
		return nil, err
	}

	contract := &Contract{
		spec:   spec,
		raw:    append([]byte(nil), raw...),
		path:   path,
		method: http.MethodPost,
	}
	contract.request = jsonSchema(operation.RequestBody)
	if contract.request == nil {
		return nil, errors.New("contract: prediction operation has no JSON request body")
	}
	contract.prediction = predictionSchema(operation.Responses)
	if contract.prediction == nil {
		return nil, errors.New("contract: prediction operation has no 200 prediction property")
	}
	return contract, nil
}

func findOperation(spec *openapi3.T) (string, *openapi3.Operation, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return "", nil, errors.New("contract: document does not contain any paths")
	}
	var (
		posts []string
		byID  = make(map[string]*openapi3.Operation)
	)
	for path, item := range spec.Paths.Map() {
		if item == nil || item.Post == nil {
			continue
		}
		posts = append(posts, path)
		byID[path] = item.Post
		if item.Post.OperationID == OperationID {
			return path, item.Post, nil
		}
	}
	if len(posts) == 1 {
		return posts[0], byID[posts[0]], nil
	}
	return "", nil, fmt.Errorf("contract: no %q operation found", OperationID)
}

func jsonSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	mt := body.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

func predictionSchema(responses *openapi3.Responses) *openapi3.Schema {
	if responses == nil {
		return nil
	}
	ref := responses.Map()["200"]
	if ref == nil || ref.Value == nil {
		return nil
	}
	mt := ref.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	prop := mt.Schema.Value.Properties["prediction"]
	if prop == nil {
		return nil
	}
	return prop.Value
}

// Path returns the operation path, for example "/predict".
func (c *Contract) Path() string {
	return c.path
}

// Method returns the operation method.
func (c *Contract) Method() string {
	return c.method
}

// Title returns the document title.
func (c *Contract) Title() string {
	if c.spec.Info == nil {
		return ""
	}
	return c.spec.Info.Title
}

// RequestFields returns the request body property names, sorted.
func (c *Contract) RequestFields() []string {
	names := make([]string, 0, len(c.request.Properties))
	for name := range c.request.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the labels the response enum allows.
func (c *Contract) Categories() []string {
	out := make([]string, 0, len(c.prediction.Enum))
	for _, value := range c.prediction.Enum {
		if str, ok := value.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Check verifies that s and the request body describe the same attributes:
// identical names, every field required, and matching enumerations.
func (c *Contract) Check(s schema.Schema) error {
	var problems []string

	required := make(map[string]bool, len(c.request.Required))
	for _, name := range c.request.Required {
		required[name] = true
	}

	for _, field := range s.Fields() {
		prop := c.request.Properties[field.Name]
		if prop == nil || prop.Value == nil {
			problems = append(problems, fmt.Sprintf("field %q is not in the request body", field.Name))
			continue
		}
		if !required[field.Name] {
			problems = append(problems, fmt.Sprintf("field %q is not required by the request body", field.Name))
		}
		if msg := compareEnum(field, prop.Value); msg != "" {
			problems = append(problems, msg)
		}
	}
	for _, name := range c.RequestFields() {
		if _, ok := s.Field(name); !ok {
			problems = append(problems, fmt.Sprintf("request property %q is not in the schema", name))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("contract: schema %q does not match: %s", s.Name(), strings.Join(problems, "; "))
}

func compareEnum(field schema.Field, prop *openapi3.Schema) string {
	want := field.OptionValues()
	if len(want) == 0 && len(prop.Enum) == 0 {
		return ""
	}
	got := make([]string, 0, len(prop.Enum))
	for _, value := range prop.Enum {
		switch v := value.(type) {
		case string:
			got = append(got, v)
		case float64:
			got = append(got, schema.FormatNumber(v))
		default:
			got = append(got, fmt.Sprint(v))
		}
	}
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Sprintf("field %q allows [%s], request body allows [%s]", field.Name, strings.Join(want, ", "), strings.Join(got, ", "))
	}
	return ""
}

// Raw returns the document the contract was parsed from.
func (c *Contract) Raw() []byte {
	return append([]byte(nil), c.raw...)
}

// ValidateRequest validates req against the request body schema.
func (c *Contract) ValidateRequest(req schema.Request) error {
	if err := c.request.VisitJSON(req.Map()); err != nil {
		return fmt.Errorf("contract: request: %w", err)
	}
	return nil
}

// ValidatePrediction validates label, in either spelling, against the
// response enum.
func (c *Contract) ValidatePrediction(label string) error {
	category, _ := predict.Normalize(label)
	if err := c.prediction.VisitJSON(category.String()); err != nil {
		return fmt.Errorf("contract: prediction: %w", err)
	}
	return nil
}
