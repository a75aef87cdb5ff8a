package mmif_test

import (
	"testing"

	"scribe/internal/mmif"
)

func TestNewAnnotationAssignsTypedIDs(t *testing.T) {
	m := mmif.New()
	view := m.NewView()

	tok := view.NewAnnotation(mmif.Token, mmif.Properties{"word": "hello"})
	tf := view.NewAnnotation(mmif.TimeFrame, mmif.Properties{"frameType": "speech"})
	tok2 := view.NewAnnotation(mmif.Token, mmif.Properties{"word": "world"})

	if tok.ID() != "t_1" {
		t.Fatalf("unexpected token id: %q", tok.ID())
	}
	if tf.ID() != "tf_1" {
		t.Fatalf("unexpected time frame id: %q", tf.ID())
	}
	if tok2.ID() != "t_2" {
		t.Fatalf("unexpected second token id: %q", tok2.ID())
	}
}

func TestNewAnnotationIgnoresCallerSuppliedID(t *testing.T) {
	view := mmif.New().NewView()
	ann := view.NewAnnotation(mmif.Token, mmif.Properties{"id": "hijacked"})
	if ann.ID() == "hijacked" {
		t.Fatal("caller-supplied id must not override allocation")
	}
}

func TestNewTextDocumentCarriesLanguage(t *testing.T) {
	view := mmif.New().NewView()
	td := view.NewTextDocument("hello world", "en")

	text, ok := td.Properties["text"].(mmif.Properties)
	if !ok {
		t.Fatalf("expected text property bag, got %T", td.Properties["text"])
	}
	if text["@value"] != "hello world" {
		t.Fatalf("unexpected text value: %v", text["@value"])
	}
	if text["@language"] != "en" {
		t.Fatalf("unexpected language: %v", text["@language"])
	}
}

func TestNewTextDocumentOmitsEmptyLanguage(t *testing.T) {
	view := mmif.New().NewView()
	td := view.NewTextDocument("hola", "")
	text := td.Properties["text"].(mmif.Properties)
	if _, present := text["@language"]; present {
		t.Fatal("expected no language key for empty language")
	}
}

func TestNewContainDeclaresShape(t *testing.T) {
	view := mmif.New().NewView()
	view.NewContain(mmif.TimeFrame, mmif.Properties{"timeUnit": "milliseconds", "document": "d1"})
	view.NewContain(mmif.Alignment, nil)

	props, ok := view.Metadata.Contains[mmif.TimeFrame]
	if !ok {
		t.Fatal("expected TimeFrame containment declared")
	}
	if props["timeUnit"] != "milliseconds" || props["document"] != "d1" {
		t.Fatalf("unexpected containment props: %v", props)
	}
	if _, ok := view.Metadata.Contains[mmif.Alignment]; !ok {
		t.Fatal("expected Alignment containment declared")
	}
}

func TestDocumentRefIsViewScoped(t *testing.T) {
	m := mmif.New()
	view := m.NewView()
	td := view.NewTextDocument("text", "")
	if got := view.DocumentRef(td); got != view.ID+":"+td.ID() {
		t.Fatalf("unexpected document ref: %q", got)
	}
}

func TestSignByRecordsAppAndParameters(t *testing.T) {
	view := mmif.New().NewView()
	view.SignBy("scribe/v1", map[string]string{"modelSize": "tiny"})
	if view.Metadata.App != "scribe/v1" {
		t.Fatalf("unexpected app: %q", view.Metadata.App)
	}
	if view.Metadata.Parameters["modelSize"] != "tiny" {
		t.Fatalf("unexpected parameters: %v", view.Metadata.Parameters)
	}
}
