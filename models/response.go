package models

import "github.com/dehackhq/dehack-api/query"

// PagedResponse wraps a list payload with its pagination metadata.
type PagedResponse struct {
	Data       interface{}      `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

// HealthCheckResponse is returned by the probe at the API root.
type HealthCheckResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the uniform body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse is returned after a successful image upload.
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
