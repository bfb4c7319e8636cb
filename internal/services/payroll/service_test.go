package payroll_test

import (
	"fmt"
	"io"
	"testing"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/repository"
	"bookkeeping-control-backend/internal/services/ledger"
	"bookkeeping-control-backend/internal/services/payroll"
	"bookkeeping-control-backend/internal/services/workflow"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	payroll   *payroll.Service
	workflow  *workflow.Engine
	ledger    *ledger.Service
	instances *repository.ApprovalInstanceRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ApprovalRule{},
		&models.ApprovalInstance{},
		&models.JournalEntry{},
		&models.Account{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	accounts := repository.NewAccountRepository(db)
	require.NoError(t, accounts.SeedDefaults())

	instances := repository.NewApprovalInstanceRepository(db)
	wf := workflow.NewEngine(repository.NewApprovalRuleRepository(db), instances, log)
	led := ledger.NewService(repository.NewJournalRepository(db), accounts, log)

	return &fixture{
		payroll:   payroll.NewService(payroll.DefaultRates(), wf, led, log),
		workflow:  wf,
		ledger:    led,
		instances: instances,
	}
}

func TestComputeNetPay(t *testing.T) {
	f := newFixture(t)

	slip := f.payroll.ComputeNetPay(50000)
	assert.InDelta(t, 7383.35, slip.PAYE, 0.01)
	assert.InDelta(t, 1080, slip.NSSF, 0.01)
	assert.InDelta(t, 1200, slip.NHIF, 0.01)
	assert.InDelta(t, 40336.65, slip.Net, 0.01)
}

func TestComputePAYEReliefFloorsAtZero(t *testing.T) {
	f := newFixture(t)

	// 10% on 20000 is below the personal relief.
	assert.Zero(t, f.payroll.ComputePAYE(20000))
}

func TestComputeNSSFTiers(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		gross float64
		want  float64
	}{
		{5000, 300},    // tier 1 only
		{12000, 720},   // into tier 2
		{18000, 1080},  // full tier 2
		{100000, 1080}, // capped at tier 2 ceiling
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, f.payroll.ComputeNSSF(tt.gross), 0.01, "gross %v", tt.gross)
	}
}

func TestComputeNHIFBands(t *testing.T) {
	f := newFixture(t)

	assert.InDelta(t, 150, f.payroll.ComputeNHIF(5000), 0.01)
	assert.InDelta(t, 750, f.payroll.ComputeNHIF(20000), 0.01)
	assert.InDelta(t, 1700, f.payroll.ComputeNHIF(250000), 0.01)
}

func TestRunPayrollComputesSlipsOnly(t *testing.T) {
	f := newFixture(t)

	slips := f.payroll.RunPayroll([]payroll.Employee{
		{ID: "e1", FirstName: "Jane", LastName: "Wanjiku", Salary: 50000},
		{ID: "e2", FirstName: "Otieno", Salary: 20000},
	})
	require.Len(t, slips, 2)
	assert.Equal(t, "Jane Wanjiku", slips[0].Name)
	assert.Equal(t, "Otieno", slips[1].Name)

	entries, err := f.ledger.Journal("acme")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPostPayrollEntriesBalance(t *testing.T) {
	f := newFixture(t)

	result, err := f.payroll.PostPayroll("acme", "2025-09", []payroll.Employee{
		{ID: "e1", FirstName: "Jane", LastName: "Wanjiku", Salary: 50000},
	})
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	require.Len(t, result.Entries, 5)

	tb, err := f.ledger.TrialBalance("acme")
	require.NoError(t, err)

	// Gross accrues to 2100 and the deductions plus net pay drain it back
	// to zero.
	accrued := tb["2100"]
	assert.True(t, accrued.Credit.Equal(accrued.Debit),
		"accrued salaries debit %s != credit %s", accrued.Debit, accrued.Credit)
	assert.True(t, tb["5100"].Debit.Equal(decimal.NewFromInt(50000)))
	assert.True(t, tb["2200"].Credit.Equal(decimal.NewFromFloat(7383.35)))
	assert.True(t, tb["2210"].Credit.Equal(decimal.NewFromInt(1080)))
	assert.True(t, tb["2220"].Credit.Equal(decimal.NewFromInt(1200)))
	assert.True(t, tb["1000"].Credit.Equal(decimal.NewFromFloat(40336.65)))
}

func TestPostPayrollGatedByApproval(t *testing.T) {
	f := newFixture(t)
	_, err := f.workflow.CreateRule("acme", payroll.DocTypePayrollRun,
		models.RuleConditions{MinAmount: floatPtr(100000)}, []string{"finance_manager"}, 1)
	require.NoError(t, err)

	employees := []payroll.Employee{
		{ID: "e1", FirstName: "Jane", Salary: 80000},
		{ID: "e2", FirstName: "Otieno", Salary: 70000},
	}

	result, err := f.payroll.PostPayroll("acme", "2025-09", employees)
	require.NoError(t, err)
	assert.True(t, result.Blocked)
	assert.Empty(t, result.Entries)

	entries, err := f.ledger.Journal("acme")
	require.NoError(t, err)
	assert.Empty(t, entries)

	insts, err := f.instances.ListByTenant("acme")
	require.NoError(t, err)
	require.Len(t, insts, 1)

	_, err = f.workflow.AddApproval(insts[0].ID, "user-a", "finance_manager", models.DecisionApproved, "ok")
	require.NoError(t, err)

	result, err = f.payroll.PostPayroll("acme", "2025-09", employees)
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	assert.Len(t, result.Entries, 5)
}

func TestPostPayrollBelowThresholdNeedsNoApproval(t *testing.T) {
	f := newFixture(t)
	_, err := f.workflow.CreateRule("acme", payroll.DocTypePayrollRun,
		models.RuleConditions{MinAmount: floatPtr(100000)}, []string{"finance_manager"}, 1)
	require.NoError(t, err)

	result, err := f.payroll.PostPayroll("acme", "2025-09", []payroll.Employee{
		{ID: "e1", FirstName: "Jane", Salary: 30000},
	})
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	assert.Len(t, result.Entries, 5)

	insts, err := f.instances.ListByTenant("acme")
	require.NoError(t, err)
	assert.Empty(t, insts)
}

func floatPtr(v float64) *float64 { return &v }
