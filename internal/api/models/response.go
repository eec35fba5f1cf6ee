package models

import (
	"ldes-planner/internal/analysis"
	"ldes-planner/internal/opt"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BuildResponse summarizes a constructed model. Builds are cached server-side
// under BuildID for later validation calls.
type BuildResponse struct {
	BuildID string `json:"build_id"`
	Case    string `json:"case"`

	Periods    int `json:"periods"`
	RepPeriods int `json:"rep_periods"`
	Timesteps  int `json:"timesteps"`

	Variables   int `json:"variables"`
	Constraints int `json:"constraints"`

	Families []opt.FamilyCount `json:"families"`
}

// ValidateResponse reports a feasibility check of a fixed assignment.
type ValidateResponse struct {
	BuildID    string               `json:"build_id"`
	Feasible   bool                 `json:"feasible"`
	Checked    int                  `json:"checked"`
	Skipped    int                  `json:"skipped"`
	Violations []analysis.Violation `json:"violations"`
}
