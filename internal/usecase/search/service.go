package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/translate/ptlsearch/internal/domain"
	"github.com/translate/ptlsearch/internal/domain/search/environment"
	"github.com/translate/ptlsearch/internal/domain/search/query"
	logpkg "github.com/translate/ptlsearch/internal/logger"
	"github.com/translate/ptlsearch/internal/metrics"
	"github.com/translate/ptlsearch/internal/repository/popular"
)

// Popular listing limits.
const (
	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

// Result is a parsed query together with the environment that parsed it.
type Result struct {
	Environment string
	Query       query.Query
}

// EnvironmentInfo describes one configured environment.
type EnvironmentInfo struct {
	Name   string
	Fields []string
}

// Service parses search text against the configured environments.
type Service struct {
	table   environment.Table
	parsers map[string]*query.Parser
	popular PopularStore
}

// New creates a search service with one parser per environment in table.
// popular can be nil.
func New(table environment.Table, popular PopularStore) *Service {
	parsers := make(map[string]*query.Parser)
	for _, name := range table.Names() {
		parsers[name] = query.NewParser(name, table)
	}
	return &Service{table: table, parsers: parsers, popular: popular}
}

// Parse scopes text for env, falling back to the default environment for unknown names.
// Parsing itself never fails; a failure to record the query is logged and swallowed.
func (s *Service) Parse(ctx context.Context, env, text string, checked []string) Result {
	p := s.parser(env)
	q := p.Parse(text, checked)
	name := p.Environment()

	metrics.QueryParseTotal.WithLabelValues(name, string(q.Scope())).Inc()
	if q.Scope() == query.ScopeDirectives {
		if n := len(q.Fields()); n > 0 {
			metrics.QueryDirectivesTotal.WithLabelValues(name, "true").Add(float64(n))
		}
		if dropped := q.Dropped(); len(dropped) > 0 {
			metrics.QueryDirectivesTotal.WithLabelValues(name, "false").Add(float64(len(dropped)))
			logpkg.FromContext(ctx).Debug("Dropped unknown search fields",
				zap.String("environment", name),
				zap.Strings("fields", dropped),
			)
		}
	}

	if s.popular != nil && q.Text() != "" {
		if err := s.popular.Record(ctx, name, q.Encode()); err != nil {
			metrics.PopularRecordErrorsTotal.Inc()
			logpkg.FromContext(ctx).Warn("Failed to record popular search",
				zap.String("environment", name),
				zap.Error(err),
			)
		}
	}

	return Result{Environment: name, Query: q}
}

// Popular returns the most searched encoded queries for env.
// limit <= 0 means DefaultPopularLimit; it is clamped to MaxPopularLimit.
func (s *Service) Popular(ctx context.Context, env string, limit int) (string, []popular.Entry, error) {
	if s.popular == nil {
		return "", nil, domain.ErrPopularDisabled
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > MaxPopularLimit {
		limit = MaxPopularLimit
	}

	name := s.parser(env).Environment()
	entries, err := s.popular.Top(ctx, name, limit)
	if err != nil {
		return "", nil, fmt.Errorf("top searches: %w", err)
	}
	return name, entries, nil
}

// Environments lists the configured environments and their valid fields.
func (s *Service) Environments() (string, []EnvironmentInfo) {
	names := s.table.Names()
	infos := make([]EnvironmentInfo, len(names))
	for i, n := range names {
		infos[i] = EnvironmentInfo{Name: n, Fields: s.parsers[n].ValidFields().Names()}
	}
	return s.table.Default(), infos
}

func (s *Service) parser(env string) *query.Parser {
	if p, ok := s.parsers[env]; ok {
		return p
	}
	return s.parsers[s.table.Default()]
}
