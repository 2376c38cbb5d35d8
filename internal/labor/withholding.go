package labor

import "github.com/shopspring/decimal"

// INSS brackets (employee contribution table with the deduction already folded in).
var (
	inssBracket1 = decimal.RequireFromString("1412")
	inssBracket2 = decimal.RequireFromString("2666.68")
	inssBracket3 = decimal.RequireFromString("4000.03")
	inssBracket4 = decimal.RequireFromString("7786.02")
	inssCeiling  = decimal.RequireFromString("908.86")
)

// IRRF brackets, applied after INSS and the standard deduction.
var (
	irrfStandardDeduction = decimal.NewFromInt(528)
	irrfBracket1          = decimal.NewFromInt(2112)
	irrfBracket2          = decimal.RequireFromString("2826.65")
	irrfBracket3          = decimal.RequireFromString("3751.05")
	irrfBracket4          = decimal.RequireFromString("4664.68")
)

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s).Div(decimal.NewFromInt(100)) }

// SocialSecurity returns the INSS withheld from gross.
func SocialSecurity(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThanOrEqual(inssBracket1):
		return gross.Mul(pct("7.5"))
	case gross.LessThanOrEqual(inssBracket2):
		return gross.Mul(pct("9")).Sub(decimal.RequireFromString("21.18"))
	case gross.LessThanOrEqual(inssBracket3):
		return gross.Mul(pct("12")).Sub(decimal.RequireFromString("101.18"))
	case gross.LessThanOrEqual(inssBracket4):
		return gross.Mul(pct("14")).Sub(decimal.RequireFromString("181.18"))
	default:
		return inssCeiling
	}
}

// IncomeTax returns the IRRF withheld from gross once socialSecurity has been
// taken out.
func IncomeTax(gross, socialSecurity decimal.Decimal) decimal.Decimal {
	base := gross.Sub(socialSecurity).Sub(irrfStandardDeduction)
	switch {
	case base.LessThanOrEqual(irrfBracket1):
		return decimal.Zero
	case base.LessThanOrEqual(irrfBracket2):
		return base.Mul(pct("7.5")).Sub(decimal.RequireFromString("158.40"))
	case base.LessThanOrEqual(irrfBracket3):
		return base.Mul(pct("15")).Sub(decimal.RequireFromString("370.40"))
	case base.LessThanOrEqual(irrfBracket4):
		return base.Mul(pct("22.5")).Sub(decimal.RequireFromString("651.73"))
	default:
		return base.Mul(pct("27.5")).Sub(decimal.RequireFromString("884.96"))
	}
}
