package contracts

// SystemMessage is returned by the initialize and update endpoints
type SystemMessage struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// SystemHealth is returned by /api/system/health
type SystemHealth struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Healthy reports whether the backend declared itself healthy
func (h *SystemHealth) Healthy() bool {
	return h.Status == "healthy"
}
