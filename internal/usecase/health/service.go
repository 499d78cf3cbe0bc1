package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing; parsing still works.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckDisabled indicates a component that is not configured.
	CheckDisabled CheckResult = "disabled"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db DBPinger
}

// New creates a Service. db can be nil when no popular-searches store is configured.
func New(db DBPinger) *Service {
	return &Service{db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"parser": CheckOK}

	switch {
	case s.db == nil:
		checks["database"] = CheckDisabled
	case s.db.Ping(ctx) != nil:
		checks["database"] = CheckError
	default:
		checks["database"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
