package model

// PredictRequest is the JSON body of POST /api/v1/predict
type PredictRequest struct {
	Property PropertyForm `json:"property"`
}

// PredictResponse wraps a successful prediction
type PredictResponse struct {
	Success bool              `json:"success"`
	Result  *PredictionResult `json:"result,omitempty"`
}

// ErrorResponse is returned by every failing API call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// VocabularyResponse lists the categories the transformer was fitted on for one column
type VocabularyResponse struct {
	Field      string   `json:"field"`
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

// HealthResponse reports service and artifact status
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Artifacts string `json:"artifacts"`
	Error     string `json:"error,omitempty"`
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}
