package assembler

import (
	"strings"

	"github.com/avatarmsp/msagen/internal/docindex"
	"github.com/fumiama/go-docx"
)

const (
	// Anchor search: the template's exact wording drifts between
	// revisions, so the locator tries an exact heading first, then a
	// looser intro phrase, then a fixed position. Inserting somewhere
	// plausible beats failing the generation.
	coreValuesHeading  = "Our Core Values"
	introPhrase        = "journey to it maturity"
	introPhraseShort   = "it maturity"
	headingSearchLimit = 50
	introSearchLimit   = 20
	fallbackAnchor     = 7

	// Address lines longer than this with a comma get split into a
	// street line plus the remainder.
	addressSplitLength = 50
)

func insertionStrategies() []docindex.Strategy {
	return []docindex.Strategy{
		{
			Name:  "core-values-heading",
			Limit: headingSearchLimit,
			Match: func(text string) bool {
				return strings.TrimSpace(text) == coreValuesHeading
			},
		},
		{
			Name:   "intro-phrase",
			Limit:  introSearchLimit,
			Offset: 1,
			Match: func(text string) bool {
				t := strings.ToLower(strings.TrimSpace(text))
				return strings.Contains(t, introPhrase) || strings.Contains(t, introPhraseShort)
			},
		},
	}
}

// insertClientBlock injects the Prepared For / Prepared By block after
// the anchor paragraph. The block is built as fresh paragraphs with
// explicit formatting, appended to the body, then spliced into place, so
// later text-substitution passes are unaffected by it.
func (a *Assembler) insertClientBlock(doc *docx.Docx, client ClientProfile, preparer PreparerProfile) {
	ix := docindex.New(doc)
	if ix.Len() == 0 {
		a.log.Warn("document has no paragraphs, appending client block at end")
	}

	anchor, strategy := ix.Locate(fallbackAnchor, insertionStrategies()...)
	if anchor >= ix.Len() {
		anchor = ix.Len() - 1
	}

	start := len(doc.Document.Body.Items)

	// Spacing before the block.
	doc.AddParagraph()
	doc.AddParagraph()

	doc.AddParagraph().AddText("Prepared For:").Bold()
	doc.AddParagraph().AddText(client.Name)
	doc.AddParagraph().AddText(client.Email)
	for _, line := range splitAddressLines(client.Address) {
		doc.AddParagraph().AddText(line)
	}
	if client.Phone != "" {
		doc.AddParagraph().AddText(client.Phone)
	} else {
		doc.AddParagraph()
	}

	doc.AddParagraph().AddText("Prepared By:").Bold()
	doc.AddParagraph().AddText(preparer.Name)
	doc.AddParagraph().AddText(preparer.Email)
	doc.AddParagraph()

	added := len(doc.Document.Body.Items) - start
	if anchor >= 0 {
		moveTailAfter(doc, ix.ItemIndex(anchor), added)
	}

	a.log.Info("client block inserted", "anchor", anchor, "strategy", strategy, "paragraphs", added)
}

// moveTailAfter relocates the last n body items to immediately follow
// the item at pos, preserving their relative order.
func moveTailAfter(doc *docx.Docx, pos, n int) {
	items := doc.Document.Body.Items
	cut := len(items) - n
	tail := append([]interface{}(nil), items[cut:]...)

	out := make([]interface{}, 0, len(items))
	out = append(out, items[:pos+1]...)
	out = append(out, tail...)
	out = append(out, items[pos+1:cut]...)
	doc.Document.Body.Items = out
}

// splitAddressLines breaks a client address into display lines. An
// explicit line-break marker wins; otherwise a long address with a comma
// is split into a street line plus the joined remainder; otherwise the
// whole address is one line. Form transport may deliver the marker as a
// literal backslash-n, so both forms are honored.
func splitAddressLines(address string) []string {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	norm := strings.ReplaceAll(address, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, `\n`, "\n")

	var lines []string
	switch {
	case strings.Contains(norm, "\n"):
		for _, line := range strings.Split(norm, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	case strings.Contains(address, ",") && len(address) > addressSplitLength:
		parts := strings.SplitN(address, ",", 2)
		lines = append(lines, strings.TrimSpace(parts[0]))
		if rest := strings.TrimSpace(parts[1]); rest != "" {
			lines = append(lines, rest)
		}
	default:
		lines = append(lines, address)
	}
	return lines
}
