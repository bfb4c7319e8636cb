package reconciliation_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/repository"
	"bookkeeping-control-backend/internal/services/reconciliation"
	"bookkeeping-control-backend/internal/services/vendors"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	staging *repository.StagedRecordRepository
	ledger  *repository.LedgerTransactionRepository
	reports *repository.ReconciliationReportRepository
	vendors *vendors.Service
	engine  *reconciliation.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.StagedRecord{},
		&models.LedgerTransaction{},
		&models.ReconciliationReport{},
		&models.VendorModel{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		staging: repository.NewStagedRecordRepository(db),
		ledger:  repository.NewLedgerTransactionRepository(db),
		reports: repository.NewReconciliationReportRepository(db),
		vendors: vendors.NewService(repository.NewVendorModelRepository(db), log),
	}
	f.engine = reconciliation.NewEngine(f.staging, f.ledger, f.reports, f.vendors, log)
	return f
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func amount(v float64) *float64 { return &v }

func (f *fixture) stage(t *testing.T, tenant string, records ...models.StagedRecord) {
	t.Helper()
	_, err := f.staging.BulkInsert(tenant, records)
	require.NoError(t, err)
}

func (f *fixture) record(t *testing.T, tenant string, txns ...models.LedgerTransaction) []models.LedgerTransaction {
	t.Helper()
	created, err := f.ledger.BulkInsert(tenant, txns)
	require.NoError(t, err)
	return created
}

func TestTierPriority(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"})
	txns := f.record(t, "acme",
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"},
		models.LedgerTransaction{Date: date("2025-09-13"), Amount: amount(1000), Vendor: "Other"},
	)

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)

	m := report.Matches[0]
	require.NotNil(t, m.Match)
	assert.Equal(t, txns[0].ID, m.Match.ID)
	assert.Equal(t, []string{"amount", "date", "vendor"}, m.Reason)
}

func TestFullMatchPreferredOverEarlierPartialMatch(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"})
	txns := f.record(t, "acme",
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "Other"},
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"},
	)

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	m := report.Matches[0]
	require.NotNil(t, m.Match)
	assert.Equal(t, txns[1].ID, m.Match.ID)
	assert.Equal(t, []string{"amount", "date", "vendor"}, m.Reason)
}

func TestAmountDateFallback(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"})
	f.record(t, "acme",
		models.LedgerTransaction{Date: date("2025-09-13"), Amount: amount(1003), Vendor: "Different Vendor"},
	)

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	m := report.Matches[0]
	require.NotNil(t, m.Match)
	assert.Equal(t, []string{"amount", "date"}, m.Reason)
}

func TestNoDoubleMatching(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme",
		models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"},
		models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"},
		models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"},
	)
	f.record(t, "acme",
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"},
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"},
	)

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Matches, 3)

	seen := make(map[uuid.UUID]bool)
	matched := 0
	for _, m := range report.Matches {
		if m.Match == nil {
			continue
		}
		matched++
		assert.False(t, seen[m.Match.ID], "ledger transaction matched twice")
		seen[m.Match.ID] = true
	}
	assert.Equal(t, 2, matched)
	assert.Len(t, report.Unmatched, 1)
}

func TestEarlierStagedRecordWinsContestedTransaction(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme",
		models.StagedRecord{Date: date("2025-09-12"), Amount: amount(500), Vendor: "First", Reference: "A"},
		models.StagedRecord{Date: date("2025-09-12"), Amount: amount(500), Vendor: "Second", Reference: "B"},
	)
	f.record(t, "acme",
		models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(500), Vendor: "first"},
	)

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	assert.NotNil(t, report.Matches[0].Match)
	assert.Equal(t, "A", report.Matches[0].Staging.Reference)
	assert.Nil(t, report.Matches[1].Match)
}

func TestMissingDateNeverMatches(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Amount: amount(1000), Vendor: "KPLC"})
	f.record(t, "acme", models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"})

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, report.Matches[0].Match)
	assert.Empty(t, report.Matches[0].Reason)
}

func TestMissingAmountNeverMatches(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Vendor: "KPLC"})
	f.record(t, "acme", models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"})

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, report.Matches[0].Match)
}

func TestToleranceBounds(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		date      string
		wantMatch bool
	}{
		{"amount at tolerance", 1005, "2025-09-12", true},
		{"amount beyond tolerance", 1005.01, "2025-09-12", false},
		{"date at tolerance", 1000, "2025-09-14", true},
		{"date beyond tolerance", 1000, "2025-09-15", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"})
			f.record(t, "acme", models.LedgerTransaction{Date: date(tt.date), Amount: amount(tt.amount), Vendor: "kplc"})

			report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
			require.NoError(t, err)
			if tt.wantMatch {
				assert.NotNil(t, report.Matches[0].Match)
			} else {
				assert.Nil(t, report.Matches[0].Match)
			}
		})
	}
}

func TestEmptyStagingYieldsEmptyReport(t *testing.T) {
	f := newFixture(t)
	f.record(t, "acme", models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"})

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, report.Matches)
	assert.Empty(t, report.Unmatched)
}

func TestTrainedDirectoryCanonicalizesVendor(t *testing.T) {
	f := newFixture(t)
	_, err := f.vendors.Retrain("acme", []string{"Kenya Power", "Safaricom PLC", "Total Energies"})
	require.NoError(t, err)

	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KENYA POWER"})
	f.record(t, "acme", models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kenya power"})

	report, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	m := report.Matches[0]
	require.NotNil(t, m.Match)
	assert.Equal(t, []string{"amount", "date", "vendor"}, m.Reason)
	assert.Equal(t, "Kenya Power", m.Staging.VendorNormalized)
}

func TestReportPersistedAndRecomputed(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "acme", models.StagedRecord{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "KPLC"})

	_, err := f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	persisted, err := f.engine.LatestReport("acme")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, 1, persisted.UnmatchedCount)

	// Adding a matching transaction and re-running replaces the report.
	f.record(t, "acme", models.LedgerTransaction{Date: date("2025-09-12"), Amount: amount(1000), Vendor: "kplc"})
	_, err = f.engine.Run("acme", reconciliation.DefaultOptions())
	require.NoError(t, err)

	persisted, err = f.engine.LatestReport("acme")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Zero(t, persisted.UnmatchedCount)
	assert.Len(t, persisted.Matches.Data(), 1)
}
