package widgets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestVersion is the current page manifest format version.
const ManifestVersion = "1"

// PageManifest lists pages to seed from a YAML or JSON document.
type PageManifest struct {
	Version string         `json:"version" yaml:"version"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Pages   []ManifestPage `json:"pages" yaml:"pages"`
	Source  string         `json:"-" yaml:"-"`
}

// ManifestPage is a single page entry. Config holds a widget configuration in
// its wire shape.
type ManifestPage struct {
	ID       string         `json:"id" yaml:"id"`
	Slug     string         `json:"slug,omitempty" yaml:"slug,omitempty"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Config   any            `json:"config" yaml:"config"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*PageManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("widgets: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("widgets: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown top level and page
// keys are rejected.
func DecodeManifest(r io.Reader) (*PageManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PageManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("widgets: manifest is empty")
		}
		return nil, fmt.Errorf("widgets: parse manifest: %w", err)
	}
	if doc.Version == "" {
		doc.Version = ManifestVersion
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks versions, ids and that every page carries a config.
func (doc *PageManifest) Validate() error {
	if doc.Version != ManifestVersion {
		return fmt.Errorf("widgets: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		id := strings.TrimSpace(page.ID)
		if id == "" {
			return fmt.Errorf("widgets: manifest page at index %d is missing id", idx)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("widgets: manifest duplicates page %s", id)
		}
		seen[id] = struct{}{}
		if page.Config == nil {
			return fmt.Errorf("widgets: manifest page %s is missing config", id)
		}
	}
	return nil
}

// Requests decodes every page config into a SavePageRequest.
func (doc *PageManifest) Requests(decoder *Decoder) ([]SavePageRequest, error) {
	if decoder == nil {
		decoder = sharedDecoder()
	}
	out := make([]SavePageRequest, 0, len(doc.Pages))
	var errs []error
	for _, page := range doc.Pages {
		cfg, err := decoder.decodeGeneric(page.Config)
		if err != nil {
			errs = append(errs, fmt.Errorf("widgets: manifest page %s: %w", page.ID, err))
			continue
		}
		out = append(out, SavePageRequest{
			ID:       page.ID,
			Slug:     page.Slug,
			Title:    page.Title,
			Config:   &cfg,
			Metadata: page.Metadata,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// ApplyManifest saves every page the manifest describes.
func (s *Service) ApplyManifest(ctx context.Context, doc *PageManifest) error {
	if doc == nil {
		return errors.New("widgets: manifest document is nil")
	}
	requests, err := doc.Requests(s.opts.Decoder)
	if err != nil {
		return err
	}
	var errs []error
	for _, req := range requests {
		if _, err := s.SavePage(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
