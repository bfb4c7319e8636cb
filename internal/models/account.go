package models

const (
	AccountAsset     = "asset"
	AccountLiability = "liability"
	AccountEquity    = "equity"
	AccountRevenue   = "revenue"
	AccountExpense   = "expense"
)

// Account is one chart-of-accounts entry. Journal account codes are
// matched against report buckets by literal code prefix.
type Account struct {
	Code string `gorm:"primaryKey" json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DefaultChartOfAccounts seeds the standard chart used by posting rules
// and the statutory payroll accounts.
func DefaultChartOfAccounts() []Account {
	return []Account{
		{Code: "1000", Name: "Assets:Cash/Bank", Type: AccountAsset},
		{Code: "2000", Name: "Liabilities:Accounts Payable", Type: AccountLiability},
		{Code: "2100", Name: "Liabilities:Accrued Salaries", Type: AccountLiability},
		{Code: "2200", Name: "Liabilities:PAYE", Type: AccountLiability},
		{Code: "2210", Name: "Liabilities:NSSF", Type: AccountLiability},
		{Code: "2220", Name: "Liabilities:NHIF", Type: AccountLiability},
		{Code: "3000", Name: "Equity:Capital", Type: AccountEquity},
		{Code: "4000", Name: "Revenue:Sales", Type: AccountRevenue},
		{Code: "5000", Name: "Expenses:General", Type: AccountExpense},
		{Code: "5100", Name: "Expenses:Payroll", Type: AccountExpense},
		{Code: "5200", Name: "Expenses:Fleet", Type: AccountExpense},
	}
}
