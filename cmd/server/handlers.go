package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/Simplici0/sanquote/internal/configstore"
	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/export"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/services"
)

type serviceView struct {
	ID                 services.ID         `json:"id"`
	Name               string              `json:"name"`
	Items              []string            `json:"items"`
	Annual             string              `json:"annual"`
	AllowedFrequencies []pricing.Frequency `json:"allowedFrequencies"`
	DefaultFrequency   pricing.Frequency   `json:"defaultFrequency"`
	Config             configstore.Status  `json:"config"`
}

type computeView struct {
	Outputs       services.Outputs `json:"outputs"`
	ConfigVersion string           `json:"configVersion"`
	Warning       string           `json:"warning,omitempty"`
}

type configView struct {
	Config         pricing.Config     `json:"config"`
	Status         configstore.Status `json:"status"`
	Warning        string             `json:"warning,omitempty"`
	SessionsSynced int                `json:"sessionsSynced,omitempty"`
}

func annualName(r services.AnnualRule) string {
	if r == services.AnnualFromContract {
		return "contract"
	}
	return "monthly"
}

func (s *server) handleServicesList(w http.ResponseWriter, r *http.Request) {
	defs := services.All()
	views := make([]serviceView, 0, len(defs))
	for _, def := range defs {
		cfg := def.Defaults()
		views = append(views, serviceView{
			ID:                 def.ID,
			Name:               def.Name,
			Items:              def.Items,
			Annual:             annualName(def.Annual()),
			AllowedFrequencies: cfg.AllowedFrequencies,
			DefaultFrequency:   cfg.DefaultFrequency,
			Config:             s.provider.Status(def.ID),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *server) lookupService(r *http.Request) (*services.Definition, error) {
	id := services.ID(chi.URLParam(r, "service"))
	def, ok := services.Lookup(id)
	if !ok {
		return nil, apperrors.NotFound("service", string(id))
	}
	return def, nil
}

func (s *server) handleCompute(w http.ResponseWriter, r *http.Request) {
	def, err := s.lookupService(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	patch, err := parsePatch(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cfg, warning := s.loadConfig(r.Context(), def.ID)
	in := services.Inputs{}.Apply(patch)
	writeJSON(w, http.StatusOK, computeView{
		Outputs:       def.Compute(in, cfg),
		ConfigVersion: cfg.Version,
		Warning:       warning,
	})
}

func (s *server) handleSessionOpen(w http.ResponseWriter, r *http.Request) {
	values, err := readValues(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := services.ID(cast.ToString(values["service"]))
	if id == "" {
		s.writeError(w, r, apperrors.Input("service is required"))
		return
	}

	var patch *services.Patch
	if raw, ok := values["inputs"]; ok {
		m, err := cast.ToStringMapE(raw)
		if err != nil {
			s.writeError(w, r, apperrors.Input("inputs must be an object"))
			return
		}
		p := services.PatchFromMap(m)
		patch = &p
	}

	sess, err := s.book.Open(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if title := strings.TrimSpace(cast.ToString(values["title"])); title != "" {
		sess.SetTitle(title)
	}
	_ = sess.Sync(r.Context())
	if patch != nil {
		sess.Apply(*patch)
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (*quote.Session, bool) {
	sess, err := s.book.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	s.book.Close(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSessionPatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	patch, err := parsePatch(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Apply(patch))
}

func parseField(r *http.Request) (services.Field, error) {
	raw := chi.URLParam(r, "field")
	f, ok := services.ParseField(raw)
	if !ok {
		return "", apperrors.Newf(apperrors.TypeInput, "unknown output field %q", raw)
	}
	return f, nil
}

func (s *server) handleOverrideSet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	field, err := parseField(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := parseOverrideValue(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.SetOverride(field, v); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleOverrideClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	field, err := parseField(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.ClearOverride(field); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleSessionSync(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = sess.Sync(r.Context())
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) handleSessionAccept(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	values, err := readValues(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if title := strings.TrimSpace(cast.ToString(values["title"])); title != "" {
		sess.SetTitle(title)
	}

	rec, err := sess.Accept(r.Context(), s.quotes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) loadQuote(r *http.Request) (quote.Record, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return quote.Record{}, apperrors.Newf(apperrors.TypeInput, "invalid quote id %q", raw)
	}
	return s.quotes.Get(r.Context(), id)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleQuoteText renders an archived quote as plain text from its stored
// snapshot; nothing is recomputed.
func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := rec.Outputs
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rec.Title)
	fmt.Fprintf(&b, "Service: %s (%s, %d months)\n", out.Service, out.Frequency, out.ContractMonths)
	b.WriteString("\nLine items:\n")
	for _, li := range out.Lines {
		mark := ""
		if li.MinimumApplied {
			mark = " (minimum)"
		}
		fmt.Fprintf(&b, "- %s x %s: $%s%s\n", li.Name, humanize.Ftoa(li.Quantity), money(li.Applied), mark)
	}
	b.WriteString("\nTotals:\n")
	fmt.Fprintf(&b, "Per visit: $%s\n", money(out.PerVisit))
	fmt.Fprintf(&b, "Monthly: $%s\n", money(out.MonthlyTotal))
	if out.InstallFee > 0 {
		fmt.Fprintf(&b, "Installation: $%s\n", money(out.InstallFee))
	}
	fmt.Fprintf(&b, "First period: $%s\n", money(out.FirstPeriod))
	fmt.Fprintf(&b, "Contract total: $%s\n", money(out.ContractTotal))
	fmt.Fprintf(&b, "Annual total: $%s\n", money(out.AnnualTotal))
	if avg := pricing.PerVisitFromAnnual(out.AnnualTotal, out.VisitsPerYear); avg > 0 {
		fmt.Fprintf(&b, "Average per visit: $%s\n", money(avg))
	}
	if rec.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", rec.Notes)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, b.String())
}

func money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func (s *server) handleQuoteExport(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := export.Workbook(rec)
	if err != nil {
		s.writeError(w, r, apperrors.Internal("render workbook", err))
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%d.xlsx"`, rec.ID))
	_, _ = w.Write(data)
}

func (s *server) handleAdminConfigsList(w http.ResponseWriter, r *http.Request) {
	stored, err := s.configs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	statuses := make([]configstore.Status, 0, len(services.All()))
	for _, def := range services.All() {
		statuses = append(statuses, s.provider.Status(def.ID))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stored":   stored,
		"statuses": statuses,
	})
}

func (s *server) handleAdminConfigGet(w http.ResponseWriter, r *http.Request) {
	def, err := s.lookupService(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg, warning := s.loadConfig(r.Context(), def.ID)
	writeJSON(w, http.StatusOK, configView{Config: cfg, Status: s.provider.Status(def.ID), Warning: warning})
}

func (s *server) handleAdminConfigPut(w http.ResponseWriter, r *http.Request) {
	def, err := s.lookupService(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, r, apperrors.Input("unreadable body"))
		return
	}

	cfg, err := s.provider.Publish(r.Context(), s.configs, def.ID, doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, configView{
		Config:         cfg,
		Status:         s.provider.Status(def.ID),
		SessionsSynced: s.syncSessions(r.Context(), def.ID),
	})
}

func (s *server) handleAdminConfigRefresh(w http.ResponseWriter, r *http.Request) {
	def, err := s.lookupService(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view := configView{}
	cfg, err := s.provider.Refresh(r.Context(), def.ID)
	if err != nil {
		view.Warning = err.Error()
	}
	view.Config = cfg
	view.Status = s.provider.Status(def.ID)
	view.SessionsSynced = s.syncSessions(r.Context(), def.ID)
	writeJSON(w, http.StatusOK, view)
}
