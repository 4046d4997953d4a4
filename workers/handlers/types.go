package handlers

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

type APIStateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version int    `json:"version"`
}

// APICountResponse reports how many rows a bulk delete removed.
type APICountResponse struct {
	Status  string `json:"status"`
	Deleted int    `json:"deleted"`
}
