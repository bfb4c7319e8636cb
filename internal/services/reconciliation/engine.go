package reconciliation

import (
	"math"
	"strings"
	"time"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/services/vendors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	DefaultDateToleranceDays = 2
	DefaultAmountTolerance   = 5.0

	ReasonAmount = "amount"
	ReasonDate   = "date"
	ReasonVendor = "vendor"
)

// StagingStore and TransactionStore provide the two input collections in
// stable insertion order; order decides which staged record wins a
// contested ledger transaction.
type StagingStore interface {
	ListByTenant(tenantID string) ([]models.StagedRecord, error)
}

type TransactionStore interface {
	ListByTenant(tenantID string) ([]models.LedgerTransaction, error)
}

type ReportStore interface {
	Save(report *models.ReconciliationReport) error
	Get(tenantID string) (*models.ReconciliationReport, error)
}

// Normalizer is the vendor canonicalization boundary.
type Normalizer interface {
	Normalize(tenantID, raw string, fuzzyThreshold int) vendors.Result
}

type Options struct {
	DateToleranceDays int
	AmountTolerance   float64
	FuzzyThreshold    int
}

func DefaultOptions() Options {
	return Options{
		DateToleranceDays: DefaultDateToleranceDays,
		AmountTolerance:   DefaultAmountTolerance,
		FuzzyThreshold:    vendors.DefaultFuzzyThreshold,
	}
}

// Report is the in-memory result of one reconciliation run. Unmatched is
// the subset of Matches with no ledger transaction.
type Report struct {
	TenantID  string               `json:"tenant_id"`
	Matches   []models.MatchResult `json:"matches"`
	Unmatched []models.MatchResult `json:"unmatched"`
	RunAt     time.Time            `json:"run_at"`
}

type Engine struct {
	staging StagingStore
	ledger  TransactionStore
	reports ReportStore
	vendors Normalizer
	log     *logrus.Logger
}

func NewEngine(staging StagingStore, ledger TransactionStore, reports ReportStore, normalizer Normalizer, log *logrus.Logger) *Engine {
	return &Engine{
		staging: staging,
		ledger:  ledger,
		reports: reports,
		vendors: normalizer,
		log:     log,
	}
}

// Run matches every staged record against the tenant's ledger
// transactions and persists the resulting report, replacing any previous
// one. Each ledger transaction is consumed by at most one match.
func (e *Engine) Run(tenantID string, opts Options) (*Report, error) {
	staging, err := e.staging.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	ledger, err := e.ledger.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	used := make(map[int]bool, len(ledger))
	matches := make([]models.MatchResult, 0, len(staging))

	for _, rec := range staging {
		if rec.Vendor != "" {
			res := e.vendors.Normalize(tenantID, rec.Vendor, opts.FuzzyThreshold)
			if res.Canonical != nil {
				rec.VendorNormalized = *res.Canonical
			} else {
				rec.VendorNormalized = rec.Vendor
			}
		}

		result := models.MatchResult{Staging: rec, Reason: []string{}}

		// Single left-to-right scan: stop at the first full (amount,
		// date, vendor) hit, remembering the first amount/date-only
		// candidate as fallback. First-fit by storage order, not
		// best-fit.
		full, fallback := -1, -1
		for i := range ledger {
			if used[i] {
				continue
			}
			txn := &ledger[i]
			if !amountWithin(rec.Amount, txn.Amount, opts.AmountTolerance) {
				continue
			}
			if !dateWithin(rec.Date, txn.Date, opts.DateToleranceDays) {
				continue
			}
			if rec.VendorNormalized != "" && txn.Vendor != "" &&
				strings.EqualFold(rec.VendorNormalized, txn.Vendor) {
				full = i
				break
			}
			if fallback == -1 {
				fallback = i
			}
		}

		switch {
		case full >= 0:
			used[full] = true
			result.Match = &ledger[full]
			result.Reason = []string{ReasonAmount, ReasonDate, ReasonVendor}
		case fallback >= 0:
			used[fallback] = true
			result.Match = &ledger[fallback]
			result.Reason = []string{ReasonAmount, ReasonDate}
		}
		matches = append(matches, result)
	}

	report := &Report{
		TenantID: tenantID,
		Matches:  matches,
		RunAt:    time.Now(),
	}
	report.Unmatched = make([]models.MatchResult, 0)
	for _, m := range matches {
		if m.Match == nil {
			report.Unmatched = append(report.Unmatched, m)
		}
	}

	if err := e.reports.Save(&models.ReconciliationReport{
		TenantID:       tenantID,
		Matches:        datatypes.NewJSONType(matches),
		UnmatchedCount: len(report.Unmatched),
		RunAt:          report.RunAt,
	}); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"module":    "reconciliation",
		"tenant":    tenantID,
		"staged":    len(staging),
		"unmatched": len(report.Unmatched),
	}).Info("reconciliation run complete")

	return report, nil
}

// LatestReport returns the persisted report for a tenant, or nil when no
// run has happened yet.
func (e *Engine) LatestReport(tenantID string) (*models.ReconciliationReport, error) {
	return e.reports.Get(tenantID)
}

func amountWithin(a, b *float64, tolerance float64) bool {
	if a == nil || b == nil {
		return false
	}
	return math.Abs(*a-*b) <= tolerance
}

// dateWithin compares calendar dates, ignoring time of day. A missing
// date on either side never matches.
func dateWithin(a, b *time.Time, toleranceDays int) bool {
	if a == nil || b == nil {
		return false
	}
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Abs(da.Sub(db).Hours()) / 24)
	return days <= toleranceDays
}
