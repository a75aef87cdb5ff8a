package mmif

// Document vocabulary types.
const (
	AudioDocument = "http://mmif.clams.ai/vocabulary/AudioDocument/v1"
	VideoDocument = "http://mmif.clams.ai/vocabulary/VideoDocument/v1"
	TextDocument  = "http://mmif.clams.ai/vocabulary/TextDocument/v1"
)

// Annotation vocabulary types.
const (
	TimeFrame = "http://mmif.clams.ai/vocabulary/TimeFrame/v5"
	Alignment = "http://mmif.clams.ai/vocabulary/Alignment/v1"
	Token     = "http://vocab.lappsgrid.org/Token"
	Sentence  = "http://vocab.lappsgrid.org/Sentence"
)

// SpecVersion is the schema version stamped on serialized output.
const SpecVersion = "http://mmif.clams.ai/1.0.5"

// idPrefixes assigns short identifier prefixes per annotation type.
var idPrefixes = map[string]string{
	TextDocument: "td",
	TimeFrame:    "tf",
	Alignment:    "a",
	Token:        "t",
	Sentence:     "s",
}

func idPrefix(annotationType string) string {
	if prefix, ok := idPrefixes[annotationType]; ok {
		return prefix
	}
	return "ann"
}
