// Package docindex provides paragraph-level navigation over a go-docx
// document body. The body is an ordered list of block items (paragraphs
// and tables); the index maps paragraph positions to body positions so
// that text-matched lookups and positional insertion can work together.
package docindex

import (
	"strings"

	"github.com/fumiama/go-docx"
)

// Index is a paragraph-addressed view of a document body. It is built
// once from the current body and is invalidated by structural edits;
// rebuild after inserting or removing block items.
type Index struct {
	doc   *docx.Docx
	paras []*docx.Paragraph
	items []int // body item index for each paragraph
}

func New(doc *docx.Docx) *Index {
	ix := &Index{doc: doc}
	for i, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			ix.paras = append(ix.paras, p)
			ix.items = append(ix.items, i)
		}
	}
	return ix
}

// Len returns the number of paragraphs in the body.
func (ix *Index) Len() int {
	return len(ix.paras)
}

// Paragraph returns the paragraph at index i.
func (ix *Index) Paragraph(i int) *docx.Paragraph {
	return ix.paras[i]
}

// ItemIndex returns the body-item position of paragraph i.
func (ix *Index) ItemIndex(i int) int {
	return ix.items[i]
}

// Text returns the joined run text of paragraph i.
func (ix *Index) Text(i int) string {
	return ParagraphText(ix.paras[i])
}

// Find scans the first limit paragraphs (all of them if limit <= 0) and
// returns the index of the first paragraph whose text satisfies pred.
func (ix *Index) Find(limit int, pred func(text string) bool) (int, bool) {
	n := len(ix.paras)
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		if pred(ix.Text(i)) {
			return i, true
		}
	}
	return 0, false
}

// Strategy is one step of a tiered paragraph-location policy: scan the
// first Limit paragraphs for a text match and, on a hit, report the
// match index shifted by Offset.
type Strategy struct {
	Name   string
	Limit  int
	Match  func(text string) bool
	Offset int
}

// Locate runs strategies in order and returns the first hit along with
// the name of the strategy that produced it. If none match, the fixed
// fallback index is returned with name "fallback".
func (ix *Index) Locate(fallback int, strategies ...Strategy) (int, string) {
	for _, s := range strategies {
		if i, ok := ix.Find(s.Limit, s.Match); ok {
			return i + s.Offset, s.Name
		}
	}
	return fallback, "fallback"
}

// Tables returns the document's tables in body order.
func (ix *Index) Tables() []*docx.Table {
	var tables []*docx.Table
	for _, item := range ix.doc.Document.Body.Items {
		if t, ok := item.(*docx.Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// ParagraphText joins the text of all runs in a paragraph. Non-run
// children (hyperlinks, bookmarks) are skipped, matching how the
// document treats them as opaque.
func ParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}
