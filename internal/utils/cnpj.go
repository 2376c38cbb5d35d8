package utils

import "unicode"

// DigitsOnly drops everything that is not a digit: "11.222.333/0001-81" -> "11222333000181".
func DigitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ValidateCNPJ checks length, repeated digits and both check digits of a
// normalized CNPJ.
func ValidateCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || allEqual(cnpj) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return checkDigit(cnpj[:12], w1) == int(cnpj[12]-'0') &&
		checkDigit(cnpj[:13], w2) == int(cnpj[13]-'0')
}

func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
