package assembler

import (
	"strings"

	"github.com/avatarmsp/msagen/internal/docindex"
	"github.com/fumiama/go-docx"
)

// replacement is one literal old→new substitution. Replacements are an
// ordered list, not a map: longer tokens must be tried before their
// prefixes ("Katy Spring Solutions" before "Katy Spring").
type replacement struct {
	old string
	new string
}

func clientReplacements(client ClientProfile) []replacement {
	return []replacement{
		{"Katy Spring Solutions", client.Name},
		{"Katy Spring", client.Name},
		{"CLIENT_NAME", client.Name},
		{"{{client_name}}", client.Name},
	}
}

func (a *Assembler) dateReplacements() []replacement {
	now := a.now()
	monthYear := now.Format("January 2006")
	fullDate := now.Format("January 02, 2006")
	return []replacement{
		{"July 2025", monthYear},
		{"DATE_PLACEHOLDER", fullDate},
		{"{{current_date}}", fullDate},
		{"{{current_month_year}}", monthYear},
	}
}

func (a *Assembler) replaceClientInformation(doc *docx.Docx, client ClientProfile) {
	n := applyReplacements(doc, clientReplacements(client))
	a.log.Info("client information replaced", "runs_changed", n)
}

func (a *Assembler) replaceDates(doc *docx.Docx) {
	n := applyReplacements(doc, a.dateReplacements())
	a.log.Info("dates replaced", "runs_changed", n)
}

// applyReplacements runs the substitutions over every top-level paragraph
// and every table-cell paragraph (row-major, cell-major). Returns the
// number of runs changed.
func applyReplacements(doc *docx.Docx, reps []replacement) int {
	total := 0
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			total += replaceInParagraph(v, reps)
		case *docx.Table:
			for _, row := range v.TableRows {
				for _, cell := range row.TableCells {
					for _, p := range cell.Paragraphs {
						total += replaceInParagraph(p, reps)
					}
				}
			}
		}
	}
	return total
}

// replaceInParagraph applies literal replacements within one paragraph.
// The match is checked against the paragraph's joined text, but only
// runs that individually contain the full token are mutated; a token
// split across run boundaries stays as-is.
func replaceInParagraph(p *docx.Paragraph, reps []replacement) int {
	count := 0
	for _, rep := range reps {
		if !strings.Contains(docindex.ParagraphText(p), rep.old) {
			continue
		}
		for _, child := range p.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				t, ok := rc.(*docx.Text)
				if !ok || !strings.Contains(t.Text, rep.old) {
					continue
				}
				t.Text = strings.ReplaceAll(t.Text, rep.old, rep.new)
				count++
			}
		}
	}
	return count
}
