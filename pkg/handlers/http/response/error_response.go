package response

type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each pipeline feature to its availability.
type HealthResponse struct {
	Status   string          `json:"status"`
	Features map[string]bool `json:"features"`
}
