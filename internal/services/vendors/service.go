package vendors

import (
	"sync"

	"bookkeeping-control-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// MinTrainNames is the smallest canonical list worth indexing. Retrain
// is a no-op below it.
const MinTrainNames = 3

// ModelStore persists the per-tenant canonical name list.
type ModelStore interface {
	Get(tenantID string) (*models.VendorModel, error)
	Save(tenantID string, names []string) (*models.VendorModel, error)
}

// Service manages per-tenant vendor directories, loading them lazily
// before the first normalization call for a tenant.
type Service struct {
	store ModelStore
	log   *logrus.Logger

	mu          sync.Mutex
	directories map[string]*Directory
}

func NewService(store ModelStore, log *logrus.Logger) *Service {
	return &Service{
		store:       store,
		log:         log,
		directories: make(map[string]*Directory),
	}
}

// Retrain rebuilds the tenant's directory from the full canonical list
// and persists it. Lists with fewer than MinTrainNames distinct names
// are skipped. Returns the number of names trained on (0 when skipped).
func (s *Service) Retrain(tenantID string, names []string) (int, error) {
	dir := NewDirectory()
	deduped := dir.Train(names)
	if len(deduped) < MinTrainNames {
		s.log.WithFields(logrus.Fields{
			"module": "vendors",
			"tenant": tenantID,
			"names":  len(deduped),
		}).Info("skipping vendor retrain, too few distinct names")
		return 0, nil
	}

	if _, err := s.store.Save(tenantID, deduped); err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.directories[tenantID] = dir
	s.mu.Unlock()
	return len(deduped), nil
}

// Normalize resolves a raw vendor string for a tenant. A missing or
// unloadable model is not an error: the result degrades to method "none".
func (s *Service) Normalize(tenantID, raw string, fuzzyThreshold int) Result {
	dir := s.directory(tenantID)
	if dir == nil {
		return Result{Input: raw, Method: MethodNone}
	}
	return dir.Normalize(raw, fuzzyThreshold)
}

func (s *Service) directory(tenantID string) *Directory {
	s.mu.Lock()
	dir, ok := s.directories[tenantID]
	s.mu.Unlock()
	if ok {
		return dir
	}

	model, err := s.store.Get(tenantID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"module": "vendors",
			"tenant": tenantID,
		}).Warnf("vendor model load failed, degrading to no-match: %v", err)
		return nil
	}
	if model == nil {
		return nil
	}

	dir = NewDirectory()
	dir.Train(model.Names.Data())

	s.mu.Lock()
	s.directories[tenantID] = dir
	s.mu.Unlock()
	return dir
}
