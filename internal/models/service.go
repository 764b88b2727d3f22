package models

// RawService is a catalog row exactly as the services endpoint returns
// it. The Services field really is the service name.
type RawService struct {
	Services       string `json:"services"`
	Category       string `json:"category"`
	Description    string `json:"description,omitempty"`
	ServicesPrefix string `json:"services_prefix,omitempty"`
}

// Service is the normalized catalog entry used when attaching cloud
// services to a lab exercise. Read-only reference data.
type Service struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Description    string `json:"description,omitempty"`
	ServicesPrefix string `json:"services_prefix,omitempty"`
}
