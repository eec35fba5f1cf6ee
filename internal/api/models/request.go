package models

// BuildRequest asks the server to construct the planning model for a case
// config on disk.
type BuildRequest struct {
	ConfigPath string `json:"config_path" binding:"required"`
}

// ValidateRequest checks a fixed (possibly partial) variable assignment
// against a previously built model.
type ValidateRequest struct {
	Assignment map[string]float64 `json:"assignment" binding:"required"`
	// Tolerance defaults to 1e-6 when omitted.
	Tolerance float64 `json:"tolerance"`
}
