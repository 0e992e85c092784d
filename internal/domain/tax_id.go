package domain

import "strings"

// ValidCPF checks the two verification digits of a Brazilian CPF.
// Punctuation ("123.456.789-09") is ignored.
func ValidCPF(s string) bool {
	digits := make([]int, 0, 11)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case strings.ContainsRune(".- ", r):
		default:
			return false
		}
	}

	if len(digits) != 11 {
		return false
	}

	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return cpfCheckDigit(digits[:9]) == digits[9] && cpfCheckDigit(digits[:10]) == digits[10]
}

func cpfCheckDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += d * weight
		weight--
	}

	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
