package docindex

import (
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func buildDoc(texts ...string) *docx.Docx {
	doc := docx.New()
	for _, s := range texts {
		p := doc.AddParagraph()
		if s != "" {
			p.AddText(s)
		}
	}
	return doc
}

func TestFind_RespectsLimit(t *testing.T) {
	doc := buildDoc("alpha", "beta", "target here", "gamma")
	ix := New(doc)

	pred := func(text string) bool { return strings.Contains(text, "target") }

	if _, ok := ix.Find(2, pred); ok {
		t.Errorf("expected no match within first 2 paragraphs")
	}
	i, ok := ix.Find(0, pred)
	if !ok {
		t.Fatalf("expected match with unlimited scan")
	}
	if i != 2 {
		t.Errorf("expected match at index 2, got %d", i)
	}
}

func TestLocate_StrategyOrderAndOffset(t *testing.T) {
	doc := buildDoc("intro", "the journey begins", "body")
	ix := New(doc)

	idx, name := ix.Locate(7,
		Strategy{
			Name:  "exact",
			Limit: 50,
			Match: func(text string) bool { return text == "Our Core Values" },
		},
		Strategy{
			Name:   "phrase",
			Limit:  20,
			Offset: 1,
			Match:  func(text string) bool { return strings.Contains(text, "journey") },
		},
	)
	if name != "phrase" {
		t.Errorf("expected phrase strategy, got %q", name)
	}
	if idx != 2 {
		t.Errorf("expected offset-adjusted index 2, got %d", idx)
	}
}

func TestLocate_Fallback(t *testing.T) {
	doc := buildDoc("a", "b", "c")
	ix := New(doc)

	idx, name := ix.Locate(7, Strategy{
		Name:  "never",
		Limit: 50,
		Match: func(string) bool { return false },
	})
	if name != "fallback" {
		t.Errorf("expected fallback, got %q", name)
	}
	if idx != 7 {
		t.Errorf("expected fallback index 7, got %d", idx)
	}
}

func TestParagraphText_JoinsRuns(t *testing.T) {
	doc := docx.New()
	p := doc.AddParagraph()
	p.AddText("Hello, ")
	p.AddText("world")

	if got := ParagraphText(p); got != "Hello, world" {
		t.Errorf("expected joined run text, got %q", got)
	}
}

func TestItemIndex_SkipsTables(t *testing.T) {
	doc := buildDoc("p0")
	doc.Document.Body.Items = append(doc.Document.Body.Items, &docx.Table{})
	doc.AddParagraph().AddText("p1")

	ix := New(doc)
	if ix.Len() != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", ix.Len())
	}
	if ix.ItemIndex(0) != 0 {
		t.Errorf("expected paragraph 0 at item 0, got %d", ix.ItemIndex(0))
	}
	if ix.ItemIndex(1) != 2 {
		t.Errorf("expected paragraph 1 at item 2, got %d", ix.ItemIndex(1))
	}
	if got := ix.Text(1); got != "p1" {
		t.Errorf("expected paragraph 1 text %q, got %q", "p1", got)
	}
	if n := len(ix.Tables()); n != 1 {
		t.Errorf("expected 1 table, got %d", n)
	}
}
