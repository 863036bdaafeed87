//nolint:tagliatelle // envelope fields use camelCase like the web client; fixture records keep their own tags
package frontend

import "github.com/applytrack/applytrack/internal/fixtures"

// IndexResponse is the response for GET /api.
type IndexResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Source    string   `json:"source"`
	Endpoints []string `json:"endpoints"`
}

// ApplicationListResponse is the response for GET /api/applications.
type ApplicationListResponse struct {
	Count        int                    `json:"count"`
	Status       string                 `json:"status,omitempty"`
	Company      string                 `json:"company,omitempty"`
	Applications []fixtures.Application `json:"applications"`
}

// ApplicationResponse is the response for GET /api/applications/{id}: the
// application with its linked contacts and history.
type ApplicationResponse struct {
	Application fixtures.Application     `json:"application"`
	Contacts    []fixtures.Contact       `json:"contacts"`
	Timeline    []fixtures.TimelineEvent `json:"timeline"`
}

// ContactListResponse is the response for GET /api/contacts.
type ContactListResponse struct {
	Count    int                `json:"count"`
	Contacts []fixtures.Contact `json:"contacts"`
}

// TimelineResponse is the response for GET /api/timeline.
type TimelineResponse struct {
	Count  int                      `json:"count"`
	Events []fixtures.TimelineEvent `json:"events"`
}

// AnalyticsResponse is the response for GET /api/analytics.
type AnalyticsResponse struct {
	Analytics fixtures.Analytics `json:"analytics"`
}

// APIError provides consistent error response format.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Applications int    `json:"applications"`
}
