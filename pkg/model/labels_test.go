package model

import "testing"

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"clickMe":       "Click Me",
		"name":          "Name",
		"dateOfBirth":   "Date Of Birth",
		"first_name":    "First Name",
		"homeURL":       "Home URL",
		"URLValue":      "URL Value",
		"address2":      "Address 2",
		"":              "",
		"already Title": "Already Title",
	}
	for input, want := range cases {
		if got := Humanize(input); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCamelCase(t *testing.T) {
	if got := CamelCase([]string{"address", "city", "zip"}); got != "addressCityZip" {
		t.Fatalf("unexpected camel case: %q", got)
	}
	if got := CamelCase([]string{"zip"}); got != "zip" {
		t.Fatalf("single segment should be untouched: %q", got)
	}
	if got := CamelCase([]string{"", "city"}); got != "city" {
		t.Fatalf("leading empty segment should be skipped: %q", got)
	}
	if got := CamelCase(nil); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
