package agents

import "encoding/json"

// SoilData describes the soil unit handed to the remediation agent.
type SoilData struct {
	MuName           string    `json:"mu_name" binding:"required"`
	PHRange          []float64 `json:"ph_range" binding:"required,min=2"`
	OrganicMatterPct *float64  `json:"organic_matter_pct" binding:"required"`
	Drainage         string    `json:"drainage" binding:"required"`
}

// RemediationRequest is the body of POST /agent/remediation.
type RemediationRequest struct {
	SoilData  SoilData `json:"soil_data"`
	AreaAcres *float64 `json:"area_acres" binding:"required"`
}

// ProcurementRequest is the body of POST /agent/procurement.
type ProcurementRequest struct {
	AmendmentPlan json.RawMessage `json:"amendment_plan" binding:"required"`
	AreaAcres     *float64        `json:"area_acres" binding:"required"`
}

// FinanceRequest is the body of POST /agent/finance.
type FinanceRequest struct {
	TotalCost *float64        `json:"total_cost" binding:"required"`
	SoilData  json.RawMessage `json:"soil_data" binding:"required"`
}
