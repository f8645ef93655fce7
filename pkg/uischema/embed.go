package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// EmbeddedFS returns the bundled overlays. Callers may pass this filesystem to
// LoadFS to use the default copy.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the bundled overlays and wraps them in a Decorator.
func Default() (*Decorator, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return nil, err
	}
	return NewDecorator(store), nil
}
