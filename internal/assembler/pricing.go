package assembler

import (
	"fmt"
	"strconv"

	"github.com/avatarmsp/msagen/internal/docindex"
	"github.com/fumiama/go-docx"
)

// PricingModel selects the billing basis for the agreement.
type PricingModel string

const (
	ModelWorkstation PricingModel = "workstation"
	ModelUser        PricingModel = "user"
)

// Per-unit monthly add-on rates.
const (
	workstationComplianceRate   = 10.00
	workstationSecurityPlusRate = 15.00
	userComplianceRate          = 5.00
	userSecurityPlusRate        = 8.00
)

// PricingPlan is the billing basis for one generation: exactly one model
// with a non-negative unit count and unit price.
type PricingPlan struct {
	Model     PricingModel
	Count     int
	UnitPrice float64
}

func (p PricingPlan) Valid() bool {
	if p.Model != ModelWorkstation && p.Model != ModelUser {
		return false
	}
	return p.Count >= 0 && p.UnitPrice >= 0
}

// BaseCost is the monthly cost before add-ons.
func (p PricingPlan) BaseCost() float64 {
	return float64(p.Count) * p.UnitPrice
}

// ComplianceAddOn is the monthly compliance cost for the selection, zero
// when the toggle is off.
func (p PricingPlan) ComplianceAddOn(services ServiceSelection) float64 {
	if !services.Compliance {
		return 0
	}
	if p.Model == ModelUser {
		return float64(p.Count) * userComplianceRate
	}
	return float64(p.Count) * workstationComplianceRate
}

// SecurityPlusAddOn is the monthly security-plus cost for the selection,
// zero when the toggle is off.
func (p PricingPlan) SecurityPlusAddOn(services ServiceSelection) float64 {
	if !services.SecurityPlus {
		return 0
	}
	if p.Model == ModelUser {
		return float64(p.Count) * userSecurityPlusRate
	}
	return float64(p.Count) * workstationSecurityPlusRate
}

// TotalCost is base plus add-ons. It is reported in logs but not written
// into the pricing table; only the base cost lands in the document.
func (p PricingPlan) TotalCost(services ServiceSelection) float64 {
	return p.BaseCost() + p.ComplianceAddOn(services) + p.SecurityPlusAddOn(services)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Pricing data lives in the second row of the pricing table: cell 1 is
// quantity, cell 2 unit price, cell 3 monthly base cost.
const pricingRowIndex = 1

// populatePricingTable writes the plan figures into the first table of
// the document. A missing table, short rows, or an unexpected table
// shape never abort generation: a document with imperfect pricing beats
// no document.
func (a *Assembler) populatePricingTable(doc *docx.Docx, plan PricingPlan, services ServiceSelection) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("pricing table update failed", "panic", r)
		}
	}()

	tables := docindex.New(doc).Tables()
	if len(tables) == 0 {
		a.log.Warn("no tables found in document, skipping pricing update")
		return
	}
	table := tables[0]

	if len(table.TableRows) > pricingRowIndex {
		row := table.TableRows[pricingRowIndex]
		setCellText(row, 1, strconv.Itoa(plan.Count))
		setCellText(row, 2, formatMoney(plan.UnitPrice))
		setCellText(row, 3, formatMoney(plan.BaseCost()))
	}

	a.log.Info("pricing table updated",
		"model", plan.Model,
		"count", plan.Count,
		"unit_price", formatMoney(plan.UnitPrice),
		"base_monthly", formatMoney(plan.BaseCost()),
		"compliance_addon", formatMoney(plan.ComplianceAddOn(services)),
		"security_plus_addon", formatMoney(plan.SecurityPlusAddOn(services)),
		"total_monthly", formatMoney(plan.TotalCost(services)),
	)
}

// setCellText overwrites the text of one cell, leaving rows narrower
// than idx untouched. The first text run receives the value and any
// remaining text runs are cleared; a cell with no text run gets a fresh
// paragraph.
func setCellText(row *docx.WTableRow, idx int, text string) {
	if idx >= len(row.TableCells) {
		return
	}
	cell := row.TableCells[idx]

	wrote := false
	for _, p := range cell.Paragraphs {
		for _, child := range p.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				t, ok := rc.(*docx.Text)
				if !ok {
					continue
				}
				if wrote {
					t.Text = ""
				} else {
					t.Text = text
					wrote = true
				}
			}
		}
	}
	if !wrote {
		cell.Paragraphs = append(cell.Paragraphs, &docx.Paragraph{
			Children: []interface{}{
				&docx.Run{Children: []interface{}{&docx.Text{Text: text}}},
			},
		})
	}
}
