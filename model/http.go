package model

type ClassifyRequestBody struct {
	Notes []int `json:"notes"`
	Bass  *int  `json:"bass,omitempty"`
}

type ClassifyResponse struct {
	DocChord
	Name     string `json:"name"`
	Inverted bool   `json:"inverted"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
