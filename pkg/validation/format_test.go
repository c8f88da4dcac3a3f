package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "json"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", format, err)
		}
	}

	// Formats are matched exactly; callers trim and lower-case nothing.
	for _, format := range []string{"", "xml", "PRETTY", " pretty ", "yaml"} {
		if err := ValidateOutputFormat(format); err == nil {
			t.Errorf("ValidateOutputFormat(%q) expected error, got nil", format)
		}
	}
}
