package transport

import "testing"

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1234.5); got != "1234,50" {
		t.Fatalf("FormatMoney = %q", got)
	}
	if got := FormatMoney(0); got != "0,00" {
		t.Fatalf("FormatMoney zero = %q", got)
	}
}

func TestFormatCBM(t *testing.T) {
	if got := FormatCBM(1.2345); got != "1,234" {
		t.Fatalf("FormatCBM = %q", got)
	}
	if got := FormatCBM(2); got != "2,000" {
		t.Fatalf("FormatCBM whole = %q", got)
	}
}
