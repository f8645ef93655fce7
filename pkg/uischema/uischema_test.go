package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-obesense/pkg/model"
	"github.com/goliatone/go-obesense/pkg/schema"
	"github.com/goliatone/go-obesense/pkg/uischema"
)

func buildForm(t *testing.T) model.FormModel {
	t.Helper()

	form, err := model.NewBuilder().Build(schema.ObesitySchema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestDefaultOverlayAddsCopy(t *testing.T) {
	decorator, err := uischema.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	form := buildForm(t)
	if err := decorator.Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if form.Summary != "Obesity risk estimate" {
		t.Fatalf("unexpected summary %q", form.Summary)
	}
	field, ok := form.Field("fcvc")
	if !ok {
		t.Fatalf("fcvc missing")
	}
	if field.Description != "1 = never, 2 = sometimes, 3 = always." {
		t.Fatalf("unexpected fcvc help %q", field.Description)
	}
	height, _ := form.Field("height")
	if height.Label != "Height (in cm)" {
		t.Fatalf("labels without overrides must be kept, got %q", height.Label)
	}

	titles := make([]string, 0, len(form.Sections))
	for _, section := range form.Sections {
		titles = append(titles, section.Title)
	}
	if diff := cmp.Diff([]string{"About you", "Daily habits"}, titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}
	if got := len(form.Sections[0].Fields) + len(form.Sections[1].Fields); got != 16 {
		t.Fatalf("every field must stay in a section, got %d", got)
	}
}

func TestOverlayMovesAndOrdersFields(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.yaml": {Data: []byte(`
forms:
  obesity:
    sections:
      - id: Body
        order: 0
      - id: General information
        order: 1
    fields:
      height:
        section: Body
        order: 1
      weight:
        section: Body
        order: 0
        label: "<b>Body weight</b>"
        metadata:
          unit: kg
`)},
		"ignored.txt": {Data: []byte("not a schema")},
	}
	store, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	form := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if diff := cmp.Diff(model.Section{Title: "Body", Fields: []string{"weight", "height"}}, form.Sections[0]); diff != "" {
		t.Fatalf("body section mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gender", "age", "family_history"}, form.Sections[1].Fields); diff != "" {
		t.Fatalf("general section mismatch (-want +got):\n%s", diff)
	}
	weight, _ := form.Field("weight")
	if weight.Label != "Body weight" {
		t.Fatalf("expected sanitised label, got %q", weight.Label)
	}
	if weight.Metadata["unit"] != "kg" {
		t.Fatalf("expected metadata merged, got %v", weight.Metadata)
	}
}

func TestDecorateSkipsUnknownForms(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"other.json": {Data: []byte(`{"forms":{"other":{"title":"Other"}}}`)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form := buildForm(t)
	before := buildForm(t)
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if diff := cmp.Diff(before, form); diff != "" {
		t.Fatalf("form should be untouched (-want +got):\n%s", diff)
	}
	if err := uischema.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("nil store: %v", err)
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"a.yaml": {Data: []byte("  ")}},
		"duplicate form": {
			"a.yaml": {Data: []byte("forms:\n  obesity:\n    title: A\n")},
			"b.yaml": {Data: []byte("forms:\n  obesity:\n    title: B\n")},
		},
		"duplicate section": {"a.yaml": {Data: []byte("forms:\n  obesity:\n    sections:\n      - id: X\n      - id: X\n")}},
		"invalid":           {"a.yaml": {Data: []byte("forms: [")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uischema.LoadFS(fsys)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "uischema:") {
				t.Fatalf("expected package prefix, got %v", err)
			}
		})
	}
}
