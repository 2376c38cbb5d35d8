package labor

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
)

type TerminationType string

const (
	WithoutCause        TerminationType = "demissaoSemJustaCausa"
	EmployeeResignation TerminationType = "pedidoDemissao"
	ForCause            TerminationType = "demissaoPorJustaCausa"
)

var terminationAliases = map[string]TerminationType{
	"demissaosemjustacausa": WithoutCause,
	"semjustacausa":         WithoutCause,
	"withoutcause":          WithoutCause,
	"pedidodemissao":        EmployeeResignation,
	"employeeresignation":   EmployeeResignation,
	"demissaoporjustacausa": ForCause,
	"porjustacausa":         ForCause,
	"forcause":              ForCause,
}

// ParseTerminationType accepts the canonical values and their short or
// English aliases, ignoring case.
func ParseTerminationType(s string) (TerminationType, error) {
	if t, ok := terminationAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", apperrors.E(apperrors.KindInvalidTerminationType, "labor.termination", nil)
}

type TerminationResult struct {
	EmployeeName         string
	TerminationType      TerminationType
	BaseSalary           decimal.Decimal
	TenureMonths         int
	BalanceOfSalary      decimal.Decimal
	NoticePay            decimal.Decimal
	ExpiredVacation      decimal.Decimal
	ProportionalVacation decimal.Decimal
	ThirteenthSalary     decimal.Decimal
	SeverancePenalty     decimal.Decimal
	SeveranceAccrual     decimal.Decimal
	GrossTotal           decimal.Decimal
}

var (
	twelve             = decimal.NewFromInt(12)
	four               = decimal.NewFromInt(4)
	severancePenaltyPc = decimal.RequireFromString("0.4")
	severanceMonthlyPc = decimal.RequireFromString("0.08")
)

// CalculateTermination computes the settlement due when the employee admitted
// on admission leaves on termination.
func CalculateTermination(baseSalary decimal.Decimal, admission, termination time.Time, kind TerminationType) (TerminationResult, error) {
	admission, termination = dateOf(admission), dateOf(termination)
	if termination.Before(admission) {
		return TerminationResult{}, apperrors.E(apperrors.KindInvalidTerminationDate, "labor.termination", nil)
	}

	tenure := TenureMonths(admission, termination)
	r := TerminationResult{
		TerminationType:      kind,
		BaseSalary:           baseSalary,
		TenureMonths:         tenure,
		BalanceOfSalary:      dailyAmount(baseSalary, termination.Day()),
		NoticePay:            decimal.Zero,
		ExpiredVacation:      decimal.Zero,
		ProportionalVacation: decimal.Zero,
		ThirteenthSalary:     decimal.Zero,
		SeverancePenalty:     decimal.Zero,
		SeveranceAccrual:     decimal.Zero,
	}

	switch kind {
	case WithoutCause:
		if tenure >= 12 {
			r.NoticePay = dailyAmount(baseSalary, 30)
		}
		r.ProportionalVacation = proportionalVacation(baseSalary, tenure)
		r.ExpiredVacation = expiredVacation(baseSalary, admission, termination)
		r.ThirteenthSalary = thirteenthSalary(baseSalary, termination)
		r.SeverancePenalty = baseSalary.Mul(severancePenaltyPc)
		r.SeveranceAccrual = baseSalary.Mul(severanceMonthlyPc).Mul(decimal.NewFromInt(int64(tenure)))
	case EmployeeResignation:
		r.ProportionalVacation = proportionalVacation(baseSalary, tenure)
		r.ExpiredVacation = expiredVacation(baseSalary, admission, termination)
		r.ThirteenthSalary = thirteenthSalary(baseSalary, termination)
	case ForCause:
		r.ExpiredVacation = expiredVacation(baseSalary, admission, termination)
	default:
		return TerminationResult{}, apperrors.E(apperrors.KindInvalidTerminationType, "labor.termination", nil)
	}

	r.GrossTotal = decimal.Sum(r.BalanceOfSalary, r.NoticePay, r.ExpiredVacation, r.ProportionalVacation,
		r.ThirteenthSalary, r.SeverancePenalty, r.SeveranceAccrual)
	return r, nil
}

// proportionalVacation pays the months of the incomplete vacation period plus the third.
func proportionalVacation(salary decimal.Decimal, tenure int) decimal.Decimal {
	months := decimal.NewFromInt(int64(tenure % 12))
	return salary.Mul(months).Mul(four).Div(twelve.Mul(three))
}

func expiredVacation(salary decimal.Decimal, admission, termination time.Time) decimal.Decimal {
	if DaysBetween(admission, termination) < 365 {
		return decimal.Zero
	}
	return salary.Add(salary.Div(three))
}

func thirteenthSalary(salary decimal.Decimal, termination time.Time) decimal.Decimal {
	jan1 := time.Date(termination.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	months := decimal.NewFromInt(int64(TenureMonths(jan1, termination)))
	return salary.Mul(months).Div(twelve)
}
