package ledger

import (
	"strings"
	"time"

	"bookkeeping-control-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// Fixed account-mapping rule for reconciliation postings: payments
	// increase general expense and reduce cash.
	ReconciliationDebitAccount  = "5000"
	ReconciliationCreditAccount = "1000"
)

type JournalStore interface {
	Append(entry *models.JournalEntry) error
	ListByTenant(tenantID string) ([]models.JournalEntry, error)
}

type AccountStore interface {
	List() ([]models.Account, error)
	GetByCode(code string) (*models.Account, error)
}

// AccountBalance accumulates one account's debit and credit sides.
type AccountBalance struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	Balanced    bool            `json:"balanced"`
}

type ProfitAndLoss struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// Service is the append-only double-entry journal plus derived reporting.
// Reports are always recomputed from the full entry history.
type Service struct {
	journal  JournalStore
	accounts AccountStore
	log      *logrus.Logger
}

func NewService(journal JournalStore, accounts AccountStore, log *logrus.Logger) *Service {
	return &Service{journal: journal, accounts: accounts, log: log}
}

// Post appends one entry debiting and crediting the full amount. Amount
// must be non-negative; that is a caller precondition, not validated here.
func (s *Service) Post(tenantID string, date time.Time, description, debitAccount, creditAccount string, amount decimal.Decimal, reference string) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Date:          date,
		Description:   description,
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Amount:        amount,
		Reference:     reference,
		CreatedAt:     time.Now(),
	}
	if err := s.journal.Append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// TrialBalance folds every entry's amount into the debit bucket of its
// debit account and the credit bucket of its credit account.
func (s *Service) TrialBalance(tenantID string) (map[string]AccountBalance, error) {
	entries, err := s.journal.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	balances := make(map[string]AccountBalance)
	for _, e := range entries {
		db := balances[e.DebitAccount]
		db.Debit = db.Debit.Add(e.Amount)
		balances[e.DebitAccount] = db

		cb := balances[e.CreditAccount]
		cb.Credit = cb.Credit.Add(e.Amount)
		balances[e.CreditAccount] = cb
	}
	return balances, nil
}

func (s *Service) BalanceSheet(tenantID string) (*BalanceSheet, error) {
	tb, err := s.TrialBalance(tenantID)
	if err != nil {
		return nil, err
	}
	assets := netDebit(tb, "1000")
	liabilities := netCredit(tb, "2")
	equity := netCredit(tb, "3")
	return &BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
		Balanced:    assets.Round(2).Equal(liabilities.Add(equity).Round(2)),
	}, nil
}

func (s *Service) ProfitAndLoss(tenantID string) (*ProfitAndLoss, error) {
	tb, err := s.TrialBalance(tenantID)
	if err != nil {
		return nil, err
	}
	revenue := netCredit(tb, "4")
	expenses := netDebit(tb, "5")
	return &ProfitAndLoss{
		Revenue:   revenue,
		Expenses:  expenses,
		NetIncome: revenue.Sub(expenses),
	}, nil
}

// PostFromReconciliation posts one entry per matched record; unmatched
// records are skipped. Description carries the normalized vendor name.
func (s *Service) PostFromReconciliation(tenantID string, matches []models.MatchResult) ([]models.JournalEntry, error) {
	posted := make([]models.JournalEntry, 0, len(matches))
	for _, m := range matches {
		if m.Match == nil {
			continue
		}
		rec := m.Staging

		date := time.Now()
		if rec.Date != nil {
			date = *rec.Date
		}
		amount := decimal.Zero
		if rec.Amount != nil {
			amount = decimal.NewFromFloat(*rec.Amount)
		}
		vendor := rec.VendorNormalized
		if vendor == "" {
			vendor = rec.Vendor
		}

		entry, err := s.Post(tenantID, date, "Payment to "+vendor,
			ReconciliationDebitAccount, ReconciliationCreditAccount,
			amount, rec.Reference)
		if err != nil {
			return posted, err
		}
		posted = append(posted, *entry)
	}

	s.log.WithFields(logrus.Fields{
		"module": "ledger",
		"tenant": tenantID,
		"posted": len(posted),
	}).Info("posted reconciliation matches to journal")
	return posted, nil
}

func (s *Service) ChartOfAccounts() ([]models.Account, error) {
	return s.accounts.List()
}

func (s *Service) Journal(tenantID string) ([]models.JournalEntry, error) {
	return s.journal.ListByTenant(tenantID)
}

func netDebit(tb map[string]AccountBalance, prefix string) decimal.Decimal {
	total := decimal.Zero
	for code, b := range tb {
		if strings.HasPrefix(code, prefix) {
			total = total.Add(b.Debit.Sub(b.Credit))
		}
	}
	return total
}

func netCredit(tb map[string]AccountBalance, prefix string) decimal.Decimal {
	total := decimal.Zero
	for code, b := range tb {
		if strings.HasPrefix(code, prefix) {
			total = total.Add(b.Credit.Sub(b.Debit))
		}
	}
	return total
}
