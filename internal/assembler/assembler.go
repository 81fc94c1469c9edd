// Package assembler generates Master Service Agreement documents from a
// fixed docx template. One Generate call owns its document tree from load
// to save; passes run strictly in sequence with no shared state between
// calls.
package assembler

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
)

// ErrTemplateNotFound means the template file was absent at every
// candidate location. It aborts generation before any output is written.
var ErrTemplateNotFound = errors.New("template file not found")

// ClientProfile is the client identity written into the document. All
// fields are required and assumed validated (trimmed, non-empty) by the
// caller; Address may carry multiple lines.
type ClientProfile struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// PreparerProfile identifies who prepared the agreement. Empty fields
// fall back to the configured defaults.
type PreparerProfile struct {
	Name  string
	Email string
}

// ServiceSelection holds the optional-service toggles. They feed the
// pricing add-on math; they do not change document structure.
type ServiceSelection struct {
	Compliance   bool
	SecurityPlus bool
}

// Config is the assembler's construction-time configuration. There is no
// process-global state; every path the assembler touches comes from here.
type Config struct {
	OutputDir    string
	TemplateFile string
	TemplateDir  string // optional, searched before the built-in candidates

	PreparerName  string
	PreparerEmail string
}

// Assembler builds MSA documents. Safe for concurrent use: each Generate
// call loads its own document tree; calls share only the read-only
// template file and the output directory.
type Assembler struct {
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
	createOut func(path string) (*os.File, error)
}

func New(cfg Config, log *slog.Logger) *Assembler {
	return &Assembler{cfg: cfg, log: log, now: time.Now, createOut: os.Create}
}

// Generate runs the full assembly pipeline and returns the path of the
// written document. It fails only on a missing template or a write
// failure; a malformed pricing table is logged and skipped so that a
// document is still produced.
func (a *Assembler) Generate(client ClientProfile, preparer PreparerProfile, services ServiceSelection, plan PricingPlan) (string, error) {
	if preparer.Name == "" {
		preparer.Name = a.cfg.PreparerName
	}
	if preparer.Email == "" {
		preparer.Email = a.cfg.PreparerEmail
	}

	a.log.Info("generating MSA",
		"client", client.Name,
		"preparer", preparer.Name,
		"pricing_model", plan.Model,
		"compliance", services.Compliance,
		"security_plus", services.SecurityPlus,
	)

	templatePath := locateTemplate(a.cfg.TemplateFile, a.templateRoots(), a.log)
	doc, err := loadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	a.insertClientBlock(doc, client, preparer)
	a.replaceClientInformation(doc, client)
	a.replaceDates(doc)
	a.handleOptionalServices(services)
	a.populatePricingTable(doc, plan, services)

	return a.save(doc, client)
}

func (a *Assembler) templateRoots() []string {
	if a.cfg.TemplateDir == "" {
		return nil
	}
	return []string{a.cfg.TemplateDir}
}

func loadTemplate(path string) (*docx.Docx, error) {
	// go-docx re-reads unparsed zip parts from the source reader when the
	// document is written, so the reader must outlive the parse. An
	// in-memory copy keeps the document self-contained without holding a
	// file handle open for the whole generation.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("open template: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return doc, nil
}

func (a *Assembler) save(doc *docx.Docx, client ClientProfile) (string, error) {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("MSA_%s_%s.docx", SanitizeClientName(client.Name), a.now().Format("20060102_150405"))
	outPath := filepath.Join(a.cfg.OutputDir, filename)

	f, err := a.createOut(outPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("write document %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("close output file: %w", err)
	}

	a.log.Info("MSA document generated", "path", outPath)
	return outPath, nil
}

// SanitizeClientName makes a client name safe for use in the output
// filename. Spaces become underscores; everything else passes through.
func SanitizeClientName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
