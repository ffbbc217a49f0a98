package descriptions

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"scraperindex/lib/configutil"
	"scraperindex/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scraperindex/lib/descriptions")

// ErrSourceMissing means the descriptions source could not be found or read.
var ErrSourceMissing = errors.New("descriptions source missing")

var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

type Description struct {
	Description string `json:"description" yaml:"description"`
	LastUpdated string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Descriptions maps a repository name to its description.
type Descriptions map[string]Description

// Get returns the description of a repository, the zero value if unknown.
func (d Descriptions) Get(name string) Description {
	return d[name]
}

// Load reads descriptions from source, which is a file path or an http(s)
// url. The format follows the extension: .yml/.yaml are yaml, anything else
// is parsed as json5. Each value is either a description string or an
// object with description and last_updated keys.
func Load(ctx context.Context, source string) (Descriptions, error) {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(attribute.String("source", source))

	var contents []byte
	var ext string
	var err error
	switch {
	case source == "":
		err = fmt.Errorf("%w: no source configured", ErrSourceMissing)
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		contents, ext, err = fetch(ctx, source)
	default:
		ext = filepath.Ext(source)
		contents, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read descriptions")
		return nil, err
	}

	out, err := Parse(ext, contents)
	if err != nil {
		err = fmt.Errorf("parse descriptions from %s: %w", source, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse descriptions")
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(out)))
	return out, nil
}

func fetch(ctx context.Context, source string) ([]byte, string, error) {
	client := resty.New()
	client.SetTimeout(time.Minute)
	client.SetHeader("accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	res, err := client.R().SetContext(ctx).Get(source)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrSourceMissing, err)
	}
	if res.IsError() {
		return nil, "", fmt.Errorf("%w: GET %s: %s", ErrSourceMissing, source, res.Status())
	}

	ext := ""
	if u, err := url.Parse(source); err == nil {
		ext = path.Ext(u.Path)
	}
	if strings.Contains(res.Header().Get("content-type"), "yaml") {
		ext = ".yml"
	}
	return res.Body(), ext, nil
}

// Parse decodes descriptions in the format given by ext.
func Parse(ext string, contents []byte) (Descriptions, error) {
	var raw map[string]any
	err := configutil.Unmarshal(ext, contents, &raw)
	if err != nil {
		return nil, err
	}

	out := make(Descriptions, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case map[string]any:
			out[name] = Description{
				Description: stringValue(v["description"]),
				LastUpdated: stringValue(v["last_updated"]),
			}
		case []any:
			return nil, fmt.Errorf("%s: expected a description, got a list", name)
		default:
			out[name] = Description{Description: stringValue(v)}
		}
	}
	return out, nil
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
