package mmif

import (
	"strconv"
	"time"
)

// View is one processing pass over the collection: containment metadata
// describing which annotation kinds appear, followed by the annotations.
type View struct {
	ID          string        `json:"id"`
	Metadata    ViewMetadata  `json:"metadata"`
	Annotations []*Annotation `json:"annotations"`

	counters map[string]int
}

// ViewMetadata records the emitting app, its runtime parameters, and the
// declared output shape.
type ViewMetadata struct {
	App        string                `json:"app"`
	Timestamp  string                `json:"timestamp,omitempty"`
	Parameters map[string]string     `json:"parameters,omitempty"`
	Contains   map[string]Properties `json:"contains"`
}

// Annotation is a single typed record inside a view.
type Annotation struct {
	Type       string     `json:"@type"`
	Properties Properties `json:"properties"`
}

// Properties is the free-form property bag of an annotation.
type Properties map[string]any

func newView(id string) *View {
	return &View{
		ID: id,
		Metadata: ViewMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Contains:  map[string]Properties{},
		},
		counters: map[string]int{},
	}
}

// SignBy stamps the emitting app identifier and the request parameters.
func (v *View) SignBy(app string, parameters map[string]string) {
	v.Metadata.App = app
	if len(parameters) > 0 {
		v.Metadata.Parameters = parameters
	}
}

// NewContain declares that annotations of the given type will appear in this
// view, with type-scoped metadata (e.g. the time unit and source document for
// time frames). Declaration happens before any annotation is emitted so
// consumers can discover the output shape without scanning records.
func (v *View) NewContain(annotationType string, props Properties) {
	if v.Metadata.Contains == nil {
		v.Metadata.Contains = map[string]Properties{}
	}
	if props == nil {
		props = Properties{}
	}
	v.Metadata.Contains[annotationType] = props
}

// NewAnnotation appends an annotation of the given type with a view-unique
// identifier and the provided properties.
func (v *View) NewAnnotation(annotationType string, props Properties) *Annotation {
	if props == nil {
		props = Properties{}
	}
	if v.counters == nil {
		v.counters = map[string]int{}
	}
	prefix := idPrefix(annotationType)
	v.counters[prefix]++
	merged := Properties{"id": v.annotationID(prefix)}
	for key, value := range props {
		if key == "id" {
			continue
		}
		merged[key] = value
	}
	ann := &Annotation{Type: annotationType, Properties: merged}
	v.Annotations = append(v.Annotations, ann)
	return ann
}

// NewTextDocument appends a text document annotation carrying the given text
// and optional language code.
func (v *View) NewTextDocument(text, lang string) *Annotation {
	value := Properties{"@value": text}
	if lang != "" {
		value["@language"] = lang
	}
	return v.NewAnnotation(TextDocument, Properties{
		"text": value,
		"mime": "text/plain",
	})
}

// AnnotationsByType returns this view's annotations of the given type in
// emission order.
func (v *View) AnnotationsByType(annotationType string) []*Annotation {
	var out []*Annotation
	for _, ann := range v.Annotations {
		if ann.Type == annotationType {
			out = append(out, ann)
		}
	}
	return out
}

// ID returns the annotation identifier.
func (a *Annotation) ID() string {
	id, _ := a.Properties["id"].(string)
	return id
}

// DocumentRef builds a view-scoped reference to an annotation that acts as a
// document (e.g. "v_0:td_1").
func (v *View) DocumentRef(a *Annotation) string {
	return v.ID + ":" + a.ID()
}

func (v *View) annotationID(prefix string) string {
	return prefix + "_" + strconv.Itoa(v.counters[prefix])
}
