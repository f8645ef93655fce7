// Package template defines the engine seam renderers use to execute page
// templates. The gotemplate subpackage provides the pongo2-backed engine.
package template
