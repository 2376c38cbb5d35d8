package labor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateTermination_WithoutCause(t *testing.T) {
	got, err := CalculateTermination(money("3000"), day("2022-03-10"), day("2024-07-20"), WithoutCause)
	require.NoError(t, err)

	assert.Equal(t, 28, got.TenureMonths)
	assert.Equal(t, "2000.00", got.BalanceOfSalary.StringFixed(2))
	assert.Equal(t, "3000.00", got.NoticePay.StringFixed(2))
	assert.Equal(t, "1333.33", got.ProportionalVacation.StringFixed(2))
	assert.Equal(t, "4000.00", got.ExpiredVacation.StringFixed(2))
	assert.Equal(t, "1500.00", got.ThirteenthSalary.StringFixed(2))
	assert.Equal(t, "1200.00", got.SeverancePenalty.StringFixed(2))
	assert.Equal(t, "6720.00", got.SeveranceAccrual.StringFixed(2))
	assert.Equal(t, "19753.33", got.GrossTotal.StringFixed(2))
}

func TestCalculateTermination_WithoutCauseUnderOneYear(t *testing.T) {
	got, err := CalculateTermination(money("2400"), day("2024-01-15"), day("2024-06-30"), WithoutCause)
	require.NoError(t, err)

	assert.Equal(t, 5, got.TenureMonths)
	assert.True(t, got.NoticePay.IsZero())
	assert.True(t, got.ExpiredVacation.IsZero())
	assert.Equal(t, "2400.00", got.BalanceOfSalary.StringFixed(2))
	assert.Equal(t, "1333.33", got.ProportionalVacation.StringFixed(2))
	assert.Equal(t, "1000.00", got.ThirteenthSalary.StringFixed(2))
	assert.Equal(t, "960.00", got.SeverancePenalty.StringFixed(2))
	assert.Equal(t, "960.00", got.SeveranceAccrual.StringFixed(2))
}

func TestCalculateTermination_EmployeeResignation(t *testing.T) {
	got, err := CalculateTermination(money("3000"), day("2022-03-10"), day("2024-07-20"), EmployeeResignation)
	require.NoError(t, err)

	assert.True(t, got.NoticePay.IsZero())
	assert.True(t, got.SeverancePenalty.IsZero())
	assert.True(t, got.SeveranceAccrual.IsZero())
	assert.Equal(t, "1333.33", got.ProportionalVacation.StringFixed(2))
	assert.Equal(t, "4000.00", got.ExpiredVacation.StringFixed(2))
	assert.Equal(t, "1500.00", got.ThirteenthSalary.StringFixed(2))
	assert.Equal(t, "8833.33", got.GrossTotal.StringFixed(2))
}

func TestCalculateTermination_ForCauseKeepsOnlyBalanceAndExpired(t *testing.T) {
	cases := []struct{ admission, termination string }{
		{"2022-03-10", "2024-07-20"},
		{"2024-01-01", "2024-01-01"},
		{"2020-12-31", "2021-12-30"},
		{"2019-05-05", "2024-12-31"},
	}
	for _, tc := range cases {
		got, err := CalculateTermination(money("4321.09"), day(tc.admission), day(tc.termination), ForCause)
		require.NoError(t, err)

		assert.True(t, got.NoticePay.IsZero(), tc)
		assert.True(t, got.ProportionalVacation.IsZero(), tc)
		assert.True(t, got.ThirteenthSalary.IsZero(), tc)
		assert.True(t, got.SeverancePenalty.IsZero(), tc)
		assert.True(t, got.SeveranceAccrual.IsZero(), tc)
		assert.True(t, got.GrossTotal.Equal(got.BalanceOfSalary.Add(got.ExpiredVacation)), tc)
	}
}

func TestCalculateTermination_ForCauseExpiredVacation(t *testing.T) {
	got, err := CalculateTermination(money("3000"), day("2022-03-10"), day("2024-07-20"), ForCause)
	require.NoError(t, err)
	assert.Equal(t, "6000.00", got.GrossTotal.StringFixed(2))
}

func TestCalculateTermination_DateBeforeAdmission(t *testing.T) {
	cases := []struct{ admission, termination string }{
		{"2024-05-10", "2024-05-09"},
		{"2024-05-10", "2023-12-31"},
		{"2000-01-01", "1999-12-31"},
	}
	for _, kind := range []TerminationType{WithoutCause, EmployeeResignation, ForCause, "whatever"} {
		for _, tc := range cases {
			_, err := CalculateTermination(money("3000"), day(tc.admission), day(tc.termination), kind)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTerminationDate)
		}
	}
}

func TestCalculateTermination_UnknownType(t *testing.T) {
	_, err := CalculateTermination(money("3000"), day("2022-03-10"), day("2024-07-20"), "acordo")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTerminationType)
}

func TestParseTerminationType(t *testing.T) {
	cases := map[string]TerminationType{
		"demissaoSemJustaCausa": WithoutCause,
		"withoutCause":          WithoutCause,
		" PEDIDODEMISSAO ":      EmployeeResignation,
		"employeeResignation":   EmployeeResignation,
		"demissaoPorJustaCausa": ForCause,
		"forCause":              ForCause,
	}
	for in, want := range cases {
		got, err := ParseTerminationType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTerminationType("acordo")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTerminationType)
}

func TestTenureMonths_IgnoresDayOfMonth(t *testing.T) {
	assert.Equal(t, 1, TenureMonths(day("2024-01-31"), day("2024-02-01")))
	assert.Equal(t, 0, TenureMonths(day("2024-01-01"), day("2024-01-31")))
	assert.Equal(t, 12, TenureMonths(day("2023-06-30"), day("2024-06-01")))
	assert.Equal(t, -1, TenureMonths(day("2024-02-01"), day("2024-01-01")))
}

func TestVacationEligible(t *testing.T) {
	assert.True(t, VacationEligible(day("2023-01-01"), day("2024-01-01")))
	assert.False(t, VacationEligible(day("2023-01-02"), day("2024-01-01")))
	// 2024 is a leap year: 365 days after 2024-01-01 is 2024-12-31
	assert.True(t, VacationEligible(day("2024-01-01"), day("2024-12-31")))
}
