package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

// DefaultTimeout bounds remote fetches when callers have no better value.
const DefaultTimeout = 10 * time.Second

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem sets the fs.FS that SourceKindFS sources read from.
func WithFileSystem(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithHTTP enables URL sources using a default client with timeout.
func WithHTTP(timeout time.Duration) Option {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{Timeout: timeout}
		}
		l.timeout = timeout
	}
}

// Loader reads import payloads from files, an fs.FS, or HTTP. HTTP is off
// unless enabled with WithHTTP or WithHTTPClient.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader.
func New(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches src and returns JSON text. YAML payloads are converted.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("loader: load %s %s: %w", src.Kind(), src.Location(), err)
	}
	return normalize(data)
}

// LoadPair fetches a schema and its UI schema. A nil uiSrc yields "{}".
func (l *Loader) LoadPair(ctx context.Context, schemaSrc, uiSrc Source) (rawSchema, rawUI []byte, err error) {
	rawSchema, err = l.Load(ctx, schemaSrc)
	if err != nil {
		return nil, nil, err
	}
	if uiSrc == nil {
		return rawSchema, []byte("{}"), nil
	}
	rawUI, err = l.Load(ctx, uiSrc)
	if err != nil {
		return nil, nil, err
	}
	return rawSchema, rawUI, nil
}

// LoadDocument fetches and parses both payloads.
func (l *Loader) LoadDocument(ctx context.Context, schemaSrc, uiSrc Source) (jsonschema.Document, jsonschema.UISchema, error) {
	rawSchema, rawUI, err := l.LoadPair(ctx, schemaSrc, uiSrc)
	if err != nil {
		return jsonschema.Document{}, nil, err
	}
	doc, err := jsonschema.ParseDocument(rawSchema)
	if err != nil {
		return jsonschema.Document{}, nil, err
	}
	ui, err := jsonschema.ParseUISchema(rawUI)
	if err != nil {
		return jsonschema.Document{}, nil, err
	}
	return doc, ui, nil
}
