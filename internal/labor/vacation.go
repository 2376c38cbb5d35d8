package labor

import (
	"github.com/shopspring/decimal"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
)

const (
	// SoldDays is the only quantity of vacation days that can be sold (abono pecuniário).
	SoldDays = 10
	// FullVacationDays forfeits the right to sell days.
	FullVacationDays = 30
)

var (
	thirty = decimal.NewFromInt(30)
	three  = decimal.NewFromInt(3)
)

type VacationResult struct {
	EmployeeName        string
	BaseSalary          decimal.Decimal
	RequestedDays       int
	SoldDays            int
	VacationValue       decimal.Decimal
	ConstitutionalThird decimal.Decimal
	SellBonus           decimal.Decimal
	BonusThird          decimal.Decimal
	GrossTotal          decimal.Decimal
	SocialSecurity      decimal.Decimal
	IncomeTax           decimal.Decimal
	NetTotal            decimal.Decimal
	Sold                bool
}

// VacationSimulation holds either a single result or, when the caller left the
// sale choice open, both variants.
type VacationSimulation struct {
	Result      *VacationResult
	WithoutSale *VacationResult
	WithSale    *VacationResult
}

// Both reports whether the simulation carries the two variants.
func (s VacationSimulation) Both() bool { return s.Result == nil }

// CalculateVacation computes the vacation payout for requestedDays, selling
// SoldDays when sell is true. A full 30-day vacation never sells days.
func CalculateVacation(baseSalary decimal.Decimal, requestedDays int, sell bool) (VacationResult, error) {
	if requestedDays < 1 || requestedDays > FullVacationDays {
		return VacationResult{}, apperrors.E(apperrors.KindInvalidVacationDays, "labor.vacation", nil)
	}
	if requestedDays == FullVacationDays {
		sell = false
	}

	sold := 0
	if sell {
		sold = SoldDays
	}

	value := dailyAmount(baseSalary, requestedDays)
	third := value.Div(three)
	bonus := dailyAmount(baseSalary, sold)
	bonusThird := bonus.Div(three)
	gross := value.Add(third).Add(bonus).Add(bonusThird)

	inss := SocialSecurity(gross)
	irrf := IncomeTax(gross, inss)

	return VacationResult{
		BaseSalary:          baseSalary,
		RequestedDays:       requestedDays,
		SoldDays:            sold,
		VacationValue:       value,
		ConstitutionalThird: third,
		SellBonus:           bonus,
		BonusThird:          bonusThird,
		GrossTotal:          gross,
		SocialSecurity:      inss,
		IncomeTax:           irrf,
		NetTotal:            gross.Sub(inss).Sub(irrf),
		Sold:                sell,
	}, nil
}

// SimulateVacation applies the sale choice: nil computes both variants,
// except for a full 30-day vacation where only the no-sale one applies.
func SimulateVacation(baseSalary decimal.Decimal, requestedDays int, sell *bool) (VacationSimulation, error) {
	if sell != nil || requestedDays == FullVacationDays {
		choice := sell != nil && *sell
		r, err := CalculateVacation(baseSalary, requestedDays, choice)
		if err != nil {
			return VacationSimulation{}, err
		}
		return VacationSimulation{Result: &r}, nil
	}

	without, err := CalculateVacation(baseSalary, requestedDays, false)
	if err != nil {
		return VacationSimulation{}, err
	}
	with, err := CalculateVacation(baseSalary, requestedDays, true)
	if err != nil {
		return VacationSimulation{}, err
	}
	return VacationSimulation{WithoutSale: &without, WithSale: &with}, nil
}

// dailyAmount is salary/30 × days, multiplied first to keep exact cents.
func dailyAmount(salary decimal.Decimal, days int) decimal.Decimal {
	return salary.Mul(decimal.NewFromInt(int64(days))).Div(thirty)
}
