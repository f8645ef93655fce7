// Package uischema loads copy overlays for form models: titles, field labels,
// help text, section titles and ordering. Overlays are JSON or YAML documents
// keyed by form ID, applied through a model.Decorator so the model builder
// stays unaware of presentation copy.
package uischema
