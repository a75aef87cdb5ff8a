package mmif

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"scribe/internal/services"
)

// Mmif is a document collection plus the views accumulated by processing apps.
type Mmif struct {
	Metadata  Metadata    `json:"metadata"`
	Documents []*Document `json:"documents"`
	Views     []*View     `json:"views"`
}

// Metadata carries the schema version of the serialized form.
type Metadata struct {
	MMIF string `json:"mmif"`
}

// Document is a member of the input collection (audio, video, or text).
type Document struct {
	Type       string             `json:"@type"`
	Properties DocumentProperties `json:"properties"`
}

// DocumentProperties holds the identifying fields of a document.
type DocumentProperties struct {
	ID       string `json:"id"`
	MIME     string `json:"mime,omitempty"`
	Location string `json:"location,omitempty"`
}

// New returns an empty collection stamped with the current schema version.
func New() *Mmif {
	return &Mmif{Metadata: Metadata{MMIF: SpecVersion}}
}

// Parse deserializes a collection from JSON.
func Parse(data []byte) (*Mmif, error) {
	var m Mmif
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, services.Wrap(services.ErrValidation, "mmif", "parse", "malformed document collection", err)
	}
	if m.Metadata.MMIF == "" {
		m.Metadata.MMIF = SpecVersion
	}
	return &m, nil
}

// Marshal serializes the collection to JSON.
func (m *Mmif) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// MarshalIndent serializes the collection to pretty-printed JSON.
func (m *Mmif) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// AddDocument appends a document to the collection.
func (m *Mmif) AddDocument(docType, id, location, mime string) *Document {
	doc := &Document{
		Type: docType,
		Properties: DocumentProperties{
			ID:       id,
			Location: location,
			MIME:     mime,
		},
	}
	m.Documents = append(m.Documents, doc)
	return doc
}

// DocumentsByType returns the documents of the given vocabulary type in order.
func (m *Mmif) DocumentsByType(docType string) []*Document {
	var out []*Document
	for _, doc := range m.Documents {
		if doc.Type == docType {
			out = append(out, doc)
		}
	}
	return out
}

// DocumentByID returns the document with the given identifier, or nil.
func (m *Mmif) DocumentByID(id string) *Document {
	for _, doc := range m.Documents {
		if doc.Properties.ID == id {
			return doc
		}
	}
	return nil
}

// NewView appends a fresh view with a collection-unique identifier.
func (m *Mmif) NewView() *View {
	existing := make(map[string]struct{}, len(m.Views))
	for _, view := range m.Views {
		existing[view.ID] = struct{}{}
	}
	n := len(m.Views)
	id := fmt.Sprintf("v_%d", n)
	for {
		if _, taken := existing[id]; !taken {
			break
		}
		n++
		id = fmt.Sprintf("v_%d", n)
	}
	view := newView(id)
	m.Views = append(m.Views, view)
	return view
}

// LocationPath resolves the document location to a local filesystem path and
// verifies the file exists. Missing or unreadable media is a hard failure for
// the request.
func (d *Document) LocationPath() (string, error) {
	location := strings.TrimSpace(d.Properties.Location)
	if location == "" {
		return "", services.Wrap(services.ErrValidation, "mmif", "locate", fmt.Sprintf("document %s has no location", d.Properties.ID), nil)
	}

	path := location
	if strings.Contains(location, "://") {
		parsed, err := url.Parse(location)
		if err != nil || parsed.Scheme != "file" {
			return "", services.Wrap(services.ErrValidation, "mmif", "locate", fmt.Sprintf("unsupported location %q for document %s", location, d.Properties.ID), err)
		}
		path = parsed.Path
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "mmif", "locate", fmt.Sprintf("media for document %s", d.Properties.ID), err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrNotFound, "mmif", "locate", fmt.Sprintf("media for document %s is a directory", d.Properties.ID), nil)
	}
	return path, nil
}
