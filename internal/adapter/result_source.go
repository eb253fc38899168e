package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	m "github.com/mouse-blink/treeport/internal/model"
)

// ErrUnknownFormat is returned when a file's format cannot be determined.
var ErrUnknownFormat = errors.New("unknown result format")

var formatByExt = map[string]m.Format{
	".json":   m.FormatGoTest,
	".jsonl":  m.FormatGoTest,
	".ndjson": m.FormatGoTest,
	".xml":    m.FormatJUnit,
	".yaml":   m.FormatYAML,
	".yml":    m.FormatYAML,
}

// ResultSource loads finished test results from a file.
type ResultSource interface {
	Load(ctx context.Context, path m.Path, format m.Format) ([]m.TestSetResult, error)
}

// Decoder decodes one result format from a stream.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) ([]m.TestSetResult, error)
}

type resultSource struct {
	fs       InputFSAdapter
	decoders map[m.Format]Decoder
}

// NewResultSource constructs a ResultSource reading files through fs with
// the built-in decoders.
func NewResultSource(fs InputFSAdapter, logger *slog.Logger) ResultSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &resultSource{
		fs: fs,
		decoders: map[m.Format]Decoder{
			m.FormatGoTest: NewGoTestJSONDecoder(logger),
			m.FormatJUnit:  NewJUnitXMLDecoder(),
			m.FormatYAML:   NewYAMLDecoder(),
		},
	}
}

// DetectFormat resolves FormatAuto (or an empty format) from the path's
// extension. Explicit formats are returned unchanged.
func DetectFormat(path m.Path, format m.Format) (m.Format, error) {
	if format != "" && format != m.FormatAuto {
		return format, nil
	}

	ext := strings.ToLower(filepath.Ext(string(path)))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

func (rs *resultSource) Load(ctx context.Context, path m.Path, format m.Format) ([]m.TestSetResult, error) {
	resolved, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}

	decoder, ok := rs.decoders[resolved]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, resolved)
	}

	f, err := rs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	sets, err := decoder.Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", path, resolved, err)
	}

	return sets, nil
}
