package application

import (
	"context"

	repo "github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

const (
	statusRunning      = "✅ Running"
	statusNotAvailable = "❌ Not Available"
	statusAvailable    = "✅ Available"
	statusWorking      = "✅ Connected & Working"
	statusErrorPrefix  = "⚠️  Connected but Error: "
	statusSet          = "✅ Set"
	statusNotSet       = "❌ Not Set"

	maxCollections = 10
	maxErrorRunes  = 50
)

// HealthReport is the body of GET /test.
type HealthReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type HealthService struct {
	Store           repo.DocumentStore
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

func NewHealthService(store repo.DocumentStore, urlSet, nameSet bool) *HealthService {
	return &HealthService{Store: store, DatabaseURLSet: urlSet, DatabaseNameSet: nameSet}
}

// Check never fails; problems are reported in the returned fields.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	r := HealthReport{
		Backend:          statusRunning,
		Database:         statusNotAvailable,
		DatabaseURL:      setOrNot(s.DatabaseURLSet),
		DatabaseName:     setOrNot(s.DatabaseNameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if s.Store == nil {
		return r
	}
	r.Database = statusAvailable
	r.ConnectionStatus = "Connected"

	names, err := s.Store.ListCollections(ctx)
	if err != nil {
		r.Database = statusErrorPrefix + truncate(err.Error(), maxErrorRunes)
		return r
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	r.Collections = append(r.Collections, names...)
	r.Database = statusWorking
	return r
}

func setOrNot(ok bool) string {
	if ok {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
