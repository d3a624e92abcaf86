package request

// DetectRequest is the body of POST /api/detect. Sensitivity maps directly
// onto the combined-score threshold; nil means the server default.
type DetectRequest struct {
	Text        string   `json:"text"`
	Sensitivity *float64 `json:"sensitivity,omitempty"`
}

// TextRequest is the body of the single-stage endpoints.
type TextRequest struct {
	Text string `json:"text"`
}
