package payroll

import "math"

// TaxBand taxes income up to Upper at Rate; bands are cumulative and
// must be ordered by Upper ascending.
type TaxBand struct {
	Upper float64
	Rate  float64
}

// AmountBand maps a gross ceiling to a flat contribution amount.
type AmountBand struct {
	Upper  float64
	Amount float64
}

// Rates are statutory deduction inputs. They are plain data the engine
// folds over; the values themselves come from configuration.
type Rates struct {
	PAYEBands             []TaxBand
	PersonalReliefMonthly float64

	NSSFEmployeeRate float64
	NSSFTier1Upper   float64
	NSSFTier2Upper   float64

	NHIFBands []AmountBand
}

// DefaultRates returns the Kenya 2023 statutory tables.
func DefaultRates() Rates {
	return Rates{
		PAYEBands: []TaxBand{
			{Upper: 24000, Rate: 0.10},
			{Upper: 32333, Rate: 0.25},
			{Upper: 500000, Rate: 0.30},
			{Upper: 800000, Rate: 0.325},
			{Upper: math.Inf(1), Rate: 0.35},
		},
		PersonalReliefMonthly: 2400,

		NSSFEmployeeRate: 0.06,
		NSSFTier1Upper:   6000,
		NSSFTier2Upper:   18000,

		NHIFBands: []AmountBand{
			{Upper: 5999, Amount: 150},
			{Upper: 7999, Amount: 300},
			{Upper: 11999, Amount: 400},
			{Upper: 14999, Amount: 500},
			{Upper: 19999, Amount: 600},
			{Upper: 24999, Amount: 750},
			{Upper: 29999, Amount: 850},
			{Upper: 34999, Amount: 900},
			{Upper: 39999, Amount: 950},
			{Upper: 44999, Amount: 1000},
			{Upper: 49999, Amount: 1100},
			{Upper: 59999, Amount: 1200},
			{Upper: 69999, Amount: 1300},
			{Upper: 79999, Amount: 1400},
			{Upper: 89999, Amount: 1500},
			{Upper: 99999, Amount: 1600},
			{Upper: math.Inf(1), Amount: 1700},
		},
	}
}
