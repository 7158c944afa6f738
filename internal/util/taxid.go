package util

// ValidTaxID reports whether the given string is a valid 11-digit
// Peruvian RUC. Three checks must all pass: the string is exactly 11
// decimal digits, the 2-digit prefix is a legal registrant category
// (10 natural person, 15 public entity, 17 social-purpose entity,
// 20 juridical person), and the final digit matches the mod-11 weighted
// checksum of the first ten.
func ValidTaxID(taxID string) bool {
	if len(taxID) != 11 {
		return false
	}

	digits := make([]int, 11)
	for i := 0; i < 11; i++ {
		c := taxID[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	prefix := digits[0]*10 + digits[1]
	switch prefix {
	case 10, 15, 17, 20:
	default:
		return false
	}

	weights := [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}

	checkDigit := 11 - sum%11
	switch checkDigit {
	case 10:
		checkDigit = 0
	case 11:
		checkDigit = 1
	}

	return checkDigit == digits[10]
}
