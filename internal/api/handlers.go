package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avatarmsp/msagen/internal/assembler"
)

//go:embed form.html
var formFS embed.FS

var formTmpl = template.Must(template.ParseFS(formFS, "form.html"))

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Default unit prices pre-filled when the form leaves them blank.
const (
	defaultWorkstationPrice = "110.00"
	defaultUserPrice        = "15.00"
)

type formView struct {
	Error string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, "", http.StatusOK)
}

func (s *Server) renderForm(w http.ResponseWriter, errMsg string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTmpl.Execute(w, formView{Error: errMsg}); err != nil {
		s.log.Error("render form", "error", err)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderForm(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	client := assembler.ClientProfile{
		Name:    strings.TrimSpace(r.FormValue("client_name")),
		Email:   strings.TrimSpace(r.FormValue("client_email")),
		Address: strings.TrimSpace(r.FormValue("client_address")),
		Phone:   strings.TrimSpace(r.FormValue("client_phone")),
	}
	if client.Name == "" || client.Email == "" || client.Address == "" || client.Phone == "" {
		s.renderForm(w, "All client information fields are required.", http.StatusBadRequest)
		return
	}

	// Blank preparer fields fall back to the configured defaults inside
	// the assembler.
	preparer := assembler.PreparerProfile{
		Name:  strings.TrimSpace(r.FormValue("preparer_name")),
		Email: strings.TrimSpace(r.FormValue("preparer_email")),
	}

	services := assembler.ServiceSelection{
		Compliance:   r.FormValue("compliance_services") != "",
		SecurityPlus: r.FormValue("security_plus_services") != "",
	}

	plan, err := parsePricingForm(r)
	if err != nil {
		s.renderForm(w, err.Error(), http.StatusBadRequest)
		return
	}

	outPath, err := s.assembler.Generate(client, preparer, services, plan)
	if err != nil {
		s.log.Error("generation failed", "client", client.Name, "error", err)
		msg := "An error occurred while generating the document."
		if errors.Is(err, assembler.ErrTemplateNotFound) {
			msg = "The MSA template file could not be located."
		}
		s.renderForm(w, msg, http.StatusInternalServerError)
		return
	}

	// The download name carries day precision; the saved path keeps the
	// authoritative second-precision name.
	download := fmt.Sprintf("MSA_%s_%s.docx",
		assembler.SanitizeClientName(client.Name), time.Now().Format("20060102"))
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download))
	http.ServeFile(w, r, outPath)
}

func parsePricingForm(r *http.Request) (assembler.PricingPlan, error) {
	var plan assembler.PricingPlan

	switch r.FormValue("pricing_model") {
	case string(assembler.ModelWorkstation):
		plan.Model = assembler.ModelWorkstation
		count, err := strconv.Atoi(formValueOr(r, "workstation_count", "0"))
		if err != nil {
			return plan, errors.New("Invalid workstation pricing data.")
		}
		price, err := strconv.ParseFloat(formValueOr(r, "workstation_price", defaultWorkstationPrice), 64)
		if err != nil {
			return plan, errors.New("Invalid workstation pricing data.")
		}
		plan.Count, plan.UnitPrice = count, price
	case string(assembler.ModelUser):
		plan.Model = assembler.ModelUser
		count, err := strconv.Atoi(formValueOr(r, "user_count", "0"))
		if err != nil {
			return plan, errors.New("Invalid user pricing data.")
		}
		price, err := strconv.ParseFloat(formValueOr(r, "user_price", defaultUserPrice), 64)
		if err != nil {
			return plan, errors.New("Invalid user pricing data.")
		}
		plan.Count, plan.UnitPrice = count, price
	default:
		return plan, errors.New("Please select a pricing model.")
	}

	if !plan.Valid() {
		return plan, errors.New("Pricing quantity and price must not be negative.")
	}
	return plan, nil
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return fallback
}
