package chi

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest      ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized    ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound        ErrorResponseCode = "not_found"
	ErrorResponseCodePopularDisabled ErrorResponseCode = "popular_disabled"
	ErrorResponseCodeInternalError   ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// ParseParams are the query parameters of GET /api/v1/search/parse.
type ParseParams struct {
	Q       *string   `form:"q"`
	Env     *string   `form:"env"`
	Checked *[]string `form:"checked"`
}

// ParseResponse is a parsed search query.
type ParseResponse struct {
	Environment string   `json:"environment"`
	Text        string   `json:"text"`
	Fields      []string `json:"fields"`
	Scope       string   `json:"scope"`
	Encoded     string   `json:"encoded"`
}

// PopularParams are the query parameters of GET /api/v1/search/popular.
type PopularParams struct {
	Env   *string `form:"env"`
	Limit *int    `form:"limit"`
}

// PopularItem is one frequently searched query.
type PopularItem struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// PopularResponse lists popular queries of one environment.
type PopularResponse struct {
	Environment string        `json:"environment"`
	Items       []PopularItem `json:"items"`
}

// Environment describes a search environment.
type Environment struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// EnvironmentsResponse lists configured environments.
type EnvironmentsResponse struct {
	Default      string        `json:"default"`
	Environments []Environment `json:"environments"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
