// Package agents runs the remediation, procurement, and finance agents that
// turn an analysis into an actionable soil plan.
package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"farmai-backend/internal/llm"
)

// Agent names, also used as LLM operation labels.
const (
	AgentRemediation = "remediation"
	AgentProcurement = "procurement"
	AgentFinance     = "finance"
)

const defaultSoilName = "agricultural land"

// ErrNotObject is returned when an object-typed input is some other JSON value.
var ErrNotObject = errors.New("must be a JSON object")

// Service renders agent prompts and parses their JSON replies.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

type remediationView struct {
	MuName        string
	PHLow         float64
	PHHigh        float64
	OrganicMatter float64
	Drainage      string
	AreaAcres     float64
}

// Remediate asks the soil remediation agent for an amendment plan.
func (s *Service) Remediate(ctx context.Context, req RemediationRequest) (json.RawMessage, error) {
	if len(req.SoilData.PHRange) < 2 {
		return nil, fmt.Errorf("ph_range: need two values")
	}
	view := remediationView{
		MuName:        req.SoilData.MuName,
		PHLow:         req.SoilData.PHRange[0],
		PHHigh:        req.SoilData.PHRange[1],
		OrganicMatter: deref(req.SoilData.OrganicMatterPct),
		Drainage:      req.SoilData.Drainage,
		AreaAcres:     deref(req.AreaAcres),
	}
	return s.run(ctx, AgentRemediation, "remediation.tmpl", view)
}

type procurementView struct {
	PlanJSON  string
	AreaAcres float64
}

// Procure asks the procurement agent for a bill of materials.
func (s *Service) Procure(ctx context.Context, req ProcurementRequest) (json.RawMessage, error) {
	if !isObject(req.AmendmentPlan) {
		return nil, fmt.Errorf("amendment_plan: %w", ErrNotObject)
	}
	var plan bytes.Buffer
	if err := json.Indent(&plan, req.AmendmentPlan, "", "  "); err != nil {
		return nil, fmt.Errorf("amendment_plan: %w", err)
	}
	view := procurementView{PlanJSON: plan.String(), AreaAcres: deref(req.AreaAcres)}
	return s.run(ctx, AgentProcurement, "procurement.tmpl", view)
}

type financeView struct {
	Cost     string
	SoilName string
	SoilJSON string
}

// DraftGrant asks the finance agent for a grant application narrative.
func (s *Service) DraftGrant(ctx context.Context, req FinanceRequest) (json.RawMessage, error) {
	if !isObject(req.SoilData) {
		return nil, fmt.Errorf("soil_data: %w", ErrNotObject)
	}
	var soil bytes.Buffer
	if err := json.Compact(&soil, req.SoilData); err != nil {
		return nil, fmt.Errorf("soil_data: %w", err)
	}
	view := financeView{
		Cost:     FormatCurrency(deref(req.TotalCost)),
		SoilName: soilName(req.SoilData),
		SoilJSON: soil.String(),
	}
	return s.run(ctx, AgentFinance, "finance.tmpl", view)
}

func (s *Service) run(ctx context.Context, agent, tmpl string, view any) (json.RawMessage, error) {
	if s.LLM == nil {
		return nil, llm.ErrNotConfigured
	}
	prompt, err := renderPrompt(tmpl, view)
	if err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", agent, err)
	}
	text, err := s.LLM.Generate(llm.WithOperation(ctx, agent), prompt)
	if err != nil {
		return nil, err
	}
	return llm.ExtractJSON(text)
}

// FormatCurrency renders an amount with thousands separators and two decimals.
// Cents are rounded ties to even on the exact binary value.
func FormatCurrency(v float64) string {
	cents, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return humanize.FormatFloat("#,###.##", cents)
}

func soilName(raw json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return defaultSoilName
	}
	name, ok := fields["mu_name"]
	if !ok || name == nil {
		return defaultSoilName
	}
	if s, ok := name.(string); ok {
		return s
	}
	return fmt.Sprint(name)
}

func isObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
