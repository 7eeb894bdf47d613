// Package registry fetches component descriptors from the Glide registry.
// Descriptors are consumed opaquely: beyond a light schema check they are
// passed through to the external installer and the manifest untouched.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/glidekit/glide-cli/internal/glide/util"
)

// descriptor is the subset of a registry item we validate. Everything else in
// the document is passenger data.
type descriptor struct {
	Name string `json:"name" jsonschema:"Component identity string"`
	Type string `json:"type,omitempty" jsonschema:"Registry item type (e.g. registry:ui)"`
}

var descriptorSchema = util.Must(util.Must(jsonschema.For[descriptor](nil)).Resolve(nil))

// Item is a fetched registry descriptor.
type Item struct {
	// Name is the component identity declared by the descriptor.
	Name string

	// Raw is the descriptor exactly as fetched.
	Raw json.RawMessage
}

// Fetcher retrieves registry items over HTTP.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Fetch downloads and validates the descriptor at the given URL. Any non-2xx
// status, parse failure, or schema violation is an error; callers in the add
// workflow treat all of these as soft failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("registry responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response: %w", err)
	}

	var instance map[string]any
	if err := json.Unmarshal(body, &instance); err != nil {
		return nil, fmt.Errorf("registry item is not valid JSON: %w", err)
	}
	if err := descriptorSchema.Validate(instance); err != nil {
		return nil, fmt.Errorf("registry item failed schema validation: %w", err)
	}

	var d descriptor
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("failed to decode registry item: %w", err)
	}

	return &Item{Name: d.Name, Raw: body}, nil
}
