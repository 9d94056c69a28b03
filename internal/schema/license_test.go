package schema

import (
	"strings"
	"testing"
)

func TestValidateLicenseExpression(t *testing.T) {
	valid := []string{
		"MIT",
		"mit",
		"Apache-2.0",
		"MIT OR Apache-2.0",
		"MIT AND (Apache-2.0 OR BSD-3-Clause)",
		"(MIT)",
		"GPL-3.0-or-later",
		"GPL-2.0-only WITH Classpath-exception-2.0",
		"Apache-2.0 WITH LLVM-exception OR MIT",
		"LicenseRef-Proprietary",
		"LicenseRef-My-Custom-License AND MIT",
		"CC-BY-4.0+",
	}
	for _, expr := range valid {
		if err := ValidateLicenseExpression(expr); err != nil {
			t.Errorf("ValidateLicenseExpression(%q): %v", expr, err)
		}
	}
}

func TestValidateLicenseExpressionErrors(t *testing.T) {
	cases := []struct {
		expr string
		frag string
	}{
		{"", "empty"},
		{"   ", "empty"},
		{"Not-A-License", "unknown license identifier"},
		{"MIT OR", "ends unexpectedly"},
		{"OR MIT", "unexpected `OR`"},
		{"MIT Apache-2.0", "unexpected `Apache-2.0`"},
		{"(MIT", "unclosed `(`"},
		{"MIT)", "unexpected `)`"},
		{"GPL-2.0-only WITH", "followed by an exception"},
		{"GPL-2.0-only WITH Nonsense-exception", "unknown license exception"},
	}
	for _, c := range cases {
		err := ValidateLicenseExpression(c.expr)
		if err == nil {
			t.Errorf("ValidateLicenseExpression(%q) succeeded, want error", c.expr)
			continue
		}
		if !strings.Contains(err.Error(), c.frag) {
			t.Errorf("ValidateLicenseExpression(%q) = %q, want mention of %q", c.expr, err, c.frag)
		}
	}
}

func TestLookupLicense(t *testing.T) {
	canon, ok := LookupLicense("apache-2.0")
	if !ok || canon != "Apache-2.0" {
		t.Errorf("LookupLicense(apache-2.0) = %q, %v", canon, ok)
	}
	if _, ok := LookupLicense("no-such-license"); ok {
		t.Error("LookupLicense accepted an unknown id")
	}
}

func TestCommonLicensesAreValid(t *testing.T) {
	for _, lic := range CommonLicenses() {
		if err := ValidateLicenseExpression(lic.Name); err != nil {
			t.Errorf("common license %q does not validate: %v", lic.Name, err)
		}
	}
}
