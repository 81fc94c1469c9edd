package assembler

import (
	"reflect"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestReplaceClientInformation_LongestTokenFirst(t *testing.T) {
	a := testAssembler(t)
	doc := docWithParagraphs("Katy Spring Solutions provides services to Katy Spring.")

	a.replaceClientInformation(doc, ClientProfile{Name: "Acme Corp"})

	want := []string{"Acme Corp provides services to Acme Corp."}
	if got := bodyTexts(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReplaceClientInformation_AllPlaceholderForms(t *testing.T) {
	a := testAssembler(t)
	doc := docWithParagraphs(
		"Agreement with CLIENT_NAME.",
		"Signed by {{client_name}}.",
	)

	a.replaceClientInformation(doc, ClientProfile{Name: "Acme Corp"})

	want := []string{"Agreement with Acme Corp.", "Signed by Acme Corp."}
	if got := bodyTexts(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReplaceClientInformation_Idempotent(t *testing.T) {
	a := testAssembler(t)
	doc := docWithParagraphs("Katy Spring Solutions agrees to the terms.")
	client := ClientProfile{Name: "Acme Corp"}

	a.replaceClientInformation(doc, client)
	first := bodyTexts(doc)

	a.replaceClientInformation(doc, client)
	second := bodyTexts(doc)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed text: %q -> %q", first, second)
	}
}

func TestReplace_TokenSplitAcrossRunsUntouched(t *testing.T) {
	a := testAssembler(t)
	doc := docx.New()
	p := doc.AddParagraph()
	p.AddText("Katy Sp")
	p.AddText("ring Solutions")

	a.replaceClientInformation(doc, ClientProfile{Name: "Acme Corp"})

	// The paragraph text matches, but no single run contains the token.
	want := []string{"Katy Spring Solutions"}
	if got := bodyTexts(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected split-run token untouched, got %q", got)
	}
}

func TestReplace_TableCells(t *testing.T) {
	a := testAssembler(t)
	doc := docWithParagraphs("intro")
	tbl := buildTable([][]string{
		{"Client", "CLIENT_NAME"},
		{"Effective", "July 2025"},
	})
	doc.Document.Body.Items = append(doc.Document.Body.Items, tbl)

	a.replaceClientInformation(doc, ClientProfile{Name: "Acme Corp"})
	a.replaceDates(doc)

	if got := cellText(tbl.TableRows[0].TableCells[1]); got != "Acme Corp" {
		t.Errorf("expected table cell replaced with client name, got %q", got)
	}
	if got := cellText(tbl.TableRows[1].TableCells[1]); got != "March 2026" {
		t.Errorf("expected table cell replaced with month-year, got %q", got)
	}
}

func TestReplaceDates_DerivedFromClock(t *testing.T) {
	a := testAssembler(t) // clock fixed at 2026-03-05
	doc := docWithParagraphs(
		"Issued July 2025.",
		"Effective as of DATE_PLACEHOLDER.",
		"Current date: {{current_date}}.",
		"Period: {{current_month_year}}.",
	)

	a.replaceDates(doc)

	want := []string{
		"Issued March 2026.",
		"Effective as of March 05, 2026.",
		"Current date: March 05, 2026.",
		"Period: March 2026.",
	}
	if got := bodyTexts(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}
