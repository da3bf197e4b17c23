package transport

import (
	"fmt"
	"strings"
)

// Display formatting for the Brazilian admin frontend: comma decimal
// separator, 2 decimals for currency, 3 for CBM. Applied only at this
// boundary; the engine itself works in raw floats.

// FormatMoney renders a monetary value with 2 decimals.
func FormatMoney(value float64) string {
	return commaDecimal(fmt.Sprintf("%.2f", value))
}

// FormatCBM renders a volumetric value with 3 decimals.
func FormatCBM(value float64) string {
	return commaDecimal(fmt.Sprintf("%.3f", value))
}

func commaDecimal(s string) string {
	return strings.Replace(s, ".", ",", 1)
}
