package utils

import (
	"math/big"
	"strings"
)

// NativeDecimals is the decimal scale of the chain's native token.
const NativeDecimals = 18

// FormatUnits renders amount / 10^decimals with at most maxFrac fractional
// digits, dropping trailing zeros. Digits beyond maxFrac are truncated.
//
//	FormatUnits(1234500000000000000, 18, 6) -> "1.2345"
//	FormatUnits(-5e17, 18, 4)               -> "-0.5"
func FormatUnits(amount *big.Int, decimals uint8, maxFrac int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}

	neg := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, base, new(big.Int))

	out := whole.String()
	if frac.Sign() != 0 && maxFrac > 0 {
		digits := frac.String()
		digits = strings.Repeat("0", int(decimals)-len(digits)) + digits
		if len(digits) > maxFrac {
			digits = digits[:maxFrac]
		}
		if digits = strings.TrimRight(digits, "0"); digits != "" {
			out += "." + digits
		}
	}

	if neg && out != "0" {
		out = "-" + out
	}
	return out
}
