package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot reports a rooted location that is absolute or climbs out of
// the loader's fs.FS.
var ErrOutsideRoot = errors.New("loader: path is outside the import root")

// Source identifies where an import payload lives.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile points at a file on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at an entry inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL points at an http or https URL.
func SourceFromURL(raw string) Source {
	return source{kind: SourceKindURL, location: strings.TrimSpace(raw)}
}

// ParseSource classifies a command line style location. http and https URLs
// become URL sources, anything else a file path. An empty location yields nil.
func ParseSource(location string) Source {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil
	}
	if isURL(trimmed) {
		return SourceFromURL(trimmed)
	}
	return SourceFromFile(trimmed)
}

// ParseRootedSource is ParseSource for untrusted input: URLs stay URL
// sources, but paths resolve inside the loader's fs.FS and never reach the
// host file system. Absolute paths and ".." segments are rejected.
func ParseRootedSource(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, nil
	}
	if isURL(trimmed) {
		return SourceFromURL(trimmed), nil
	}
	name := strings.TrimPrefix(filepath.ToSlash(trimmed), "./")
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, trimmed)
	}
	return SourceFromFS(name), nil
}

func isURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
