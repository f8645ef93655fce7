package source

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a schema or contract document originated so loaders
// can operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() Kind {
	return KindFile
}

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() Kind {
	return KindFS
}

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() Kind {
	return KindURL
}

// FromURL parses the supplied URL string and returns a Source.
func FromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}

// Parse picks the Source kind from the shape of raw: http(s) URLs become URL
// sources, everything else is treated as a file path.
func Parse(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("source: location is required")
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return FromURL(raw)
	}
	return FromFile(raw), nil
}
