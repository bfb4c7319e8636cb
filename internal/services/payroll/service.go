package payroll

import (
	"fmt"
	"math"
	"strings"
	"time"

	"bookkeeping-control-backend/internal/models"
	"bookkeeping-control-backend/internal/services/workflow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DocTypePayrollRun is the workflow document type payroll posting is
// gated under.
const DocTypePayrollRun = "payroll_run"

const (
	salariesExpenseAccount = "5100"
	accruedSalariesAccount = "2100"
	payePayableAccount     = "2200"
	nssfPayableAccount     = "2210"
	nhifPayableAccount     = "2220"
	cashAccount            = "1000"
)

type Employee struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Salary    float64 `json:"salary"`
}

type Payslip struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Gross      float64 `json:"gross"`
	PAYE       float64 `json:"paye"`
	NSSF       float64 `json:"nssf"`
	NHIF       float64 `json:"nhif"`
	Net        float64 `json:"net"`
}

type RunResult struct {
	RunID   string                `json:"run_id"`
	Slips   []Payslip             `json:"slips"`
	Blocked bool                  `json:"blocked"`
	Entries []models.JournalEntry `json:"entries,omitempty"`
}

// Gate is the approval boundary; posting never happens before it allows.
type Gate interface {
	EnforcePostingAllowed(tenantID, docType, docID string, doc workflow.Document) (bool, error)
}

type Journal interface {
	Post(tenantID string, date time.Time, description, debitAccount, creditAccount string, amount decimal.Decimal, reference string) (*models.JournalEntry, error)
}

type Service struct {
	rates   Rates
	gate    Gate
	journal Journal
	log     *logrus.Logger
}

func NewService(rates Rates, gate Gate, journal Journal, log *logrus.Logger) *Service {
	return &Service{rates: rates, gate: gate, journal: journal, log: log}
}

// ComputePAYE applies the progressive bands and subtracts personal
// relief, never going below zero.
func (s *Service) ComputePAYE(gross float64) float64 {
	tax := 0.0
	prev := 0.0
	for _, band := range s.rates.PAYEBands {
		if gross > band.Upper {
			tax += (band.Upper - prev) * band.Rate
			prev = band.Upper
			continue
		}
		tax += (gross - prev) * band.Rate
		break
	}
	tax -= s.rates.PersonalReliefMonthly
	return math.Max(0, tax)
}

func (s *Service) ComputeNSSF(gross float64) float64 {
	tier1 := math.Min(gross, s.rates.NSSFTier1Upper) * s.rates.NSSFEmployeeRate
	tier2 := 0.0
	if gross > s.rates.NSSFTier1Upper {
		tier2 = (math.Min(gross, s.rates.NSSFTier2Upper) - s.rates.NSSFTier1Upper) * s.rates.NSSFEmployeeRate
	}
	return tier1 + tier2
}

func (s *Service) ComputeNHIF(gross float64) float64 {
	for _, band := range s.rates.NHIFBands {
		if gross <= band.Upper {
			return band.Amount
		}
	}
	return s.rates.NHIFBands[len(s.rates.NHIFBands)-1].Amount
}

func (s *Service) ComputeNetPay(gross float64) Payslip {
	paye := s.ComputePAYE(gross)
	nssf := s.ComputeNSSF(gross)
	nhif := s.ComputeNHIF(gross)
	return Payslip{
		Gross: gross,
		PAYE:  round2(paye),
		NSSF:  round2(nssf),
		NHIF:  round2(nhif),
		Net:   round2(gross - paye - nssf - nhif),
	}
}

// RunPayroll computes slips only; it has no side effects.
func (s *Service) RunPayroll(employees []Employee) []Payslip {
	slips := make([]Payslip, 0, len(employees))
	for _, e := range employees {
		slip := s.ComputeNetPay(e.Salary)
		slip.EmployeeID = e.ID
		slip.Name = strings.TrimSpace(e.FirstName + " " + e.LastName)
		slips = append(slips, slip)
	}
	return slips
}

// PostPayroll computes the run and posts it as accrual entries, gated by
// the approval workflow under the run's total gross. A blocked run posts
// nothing and leaves a pending approval instance behind.
func (s *Service) PostPayroll(tenantID, runID string, employees []Employee) (*RunResult, error) {
	slips := s.RunPayroll(employees)
	result := &RunResult{RunID: runID, Slips: slips}

	var gross, paye, nssf, nhif float64
	for _, slip := range slips {
		gross += slip.Gross
		paye += slip.PAYE
		nssf += slip.NSSF
		nhif += slip.NHIF
	}
	net := round2(gross - paye - nssf - nhif)

	allowed, err := s.gate.EnforcePostingAllowed(tenantID, DocTypePayrollRun, runID, workflow.Document{Amount: &gross})
	if err != nil {
		return nil, err
	}
	if !allowed {
		result.Blocked = true
		s.log.WithFields(logrus.Fields{
			"module": "payroll",
			"tenant": tenantID,
			"run_id": runID,
		}).Info("payroll run blocked pending approval")
		return result, nil
	}

	now := time.Now()
	post := func(desc, debit, credit string, amount float64, ref string) error {
		if amount <= 0 {
			return nil
		}
		entry, err := s.journal.Post(tenantID, now, desc, debit, credit, decimal.NewFromFloat(amount), ref)
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, *entry)
		return nil
	}

	if err := post(fmt.Sprintf("Payroll expense for %s", runID), salariesExpenseAccount, accruedSalariesAccount, round2(gross), "PAYROLL-"+runID); err != nil {
		return nil, err
	}
	if err := post(fmt.Sprintf("PAYE withholding for %s", runID), accruedSalariesAccount, payePayableAccount, round2(paye), "PAYE-"+runID); err != nil {
		return nil, err
	}
	if err := post(fmt.Sprintf("NSSF deduction for %s", runID), accruedSalariesAccount, nssfPayableAccount, round2(nssf), "NSSF-"+runID); err != nil {
		return nil, err
	}
	if err := post(fmt.Sprintf("NHIF deduction for %s", runID), accruedSalariesAccount, nhifPayableAccount, round2(nhif), "NHIF-"+runID); err != nil {
		return nil, err
	}
	if err := post(fmt.Sprintf("Net pay for %s", runID), accruedSalariesAccount, cashAccount, net, "NETPAY-"+runID); err != nil {
		return nil, err
	}
	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
