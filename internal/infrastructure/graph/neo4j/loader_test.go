package neo4j

import (
	"strings"
	"testing"
)

func TestSplitModelName(t *testing.T) {
	cases := []struct {
		in    string
		short string
		full  string
	}{
		{"Support Vector Machine (SVM)", "SVM", "Support Vector Machine"},
		{"Artificial Neural Network (ANN)", "ANN", "Artificial Neural Network"},
		{"Random Forest", "Random Forest", "Random Forest"},
		{"Multiple Linear Regression (MLR)", "MLR", "Multiple Linear Regression"},
	}
	for _, tc := range cases {
		short, full := SplitModelName(tc.in)
		if short != tc.short || full != tc.full {
			t.Fatalf("SplitModelName(%q) = (%q, %q), want (%q, %q)", tc.in, short, full, tc.short, tc.full)
		}
	}
}

func TestCapText(t *testing.T) {
	long := strings.Repeat("a", sectionTextLimit+100)
	if got := capText(long); len(got) != sectionTextLimit {
		t.Fatalf("expected section text capped at %d, got %d", sectionTextLimit, len(got))
	}
	if got := capText("short"); got != "short" {
		t.Fatalf("short text must pass through, got %q", got)
	}
}

func TestCapList(t *testing.T) {
	values := []string{"a", "b", "c", "d"}
	if got := capList(values, 2); len(got) != 2 || got[0] != "a" {
		t.Fatalf("expected first 2 values, got %v", got)
	}
	if got := capList(values, 10); len(got) != 4 {
		t.Fatalf("expected all values for large cap, got %v", got)
	}
}
