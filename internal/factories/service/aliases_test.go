package service

import "testing"

func TestDisplayNamePrefersCanonical(t *testing.T) {
	got := DisplayName("Cerâmica Sul", map[string]string{"nome": "legado"})
	if got != "Cerâmica Sul" {
		t.Fatalf("DisplayName = %q", got)
	}
}

func TestDisplayNameFallsThroughAliasChain(t *testing.T) {
	legacy := map[string]string{
		"nome":        "",
		"razaoSocial": "Cerâmica Sul Ltda",
		"fabrica":     "outro",
	}
	if got := DisplayName("  ", legacy); got != "Cerâmica Sul Ltda" {
		t.Fatalf("DisplayName = %q, want first non-blank alias", got)
	}
}

func TestDisplayNamePlaceholderWhenNothingUsable(t *testing.T) {
	if got := DisplayName("", map[string]string{"nome": "  "}); got != "Fábrica sem nome" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := DisplayName("", nil); got != "Fábrica sem nome" {
		t.Fatalf("DisplayName with nil legacy = %q", got)
	}
}
