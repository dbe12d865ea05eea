package venue

import "testing"

func TestParseLevels_SkipsShortAndZeroRows(t *testing.T) {
	raw := [][]string{
		{"100", "1.5"},
		{"101"},
		{"102", "0"},
		{"103", "2"},
	}
	levels, err := ParseLevels(raw, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 valid levels, got %d: %+v", len(levels), levels)
	}
	if levels[0].Price.String() != "100" || levels[1].Price.String() != "103" {
		t.Fatalf("unexpected level order: %+v", levels)
	}
}

func TestParseLevels_MalformedPriceErrors(t *testing.T) {
	raw := [][]string{{"not-a-number", "1"}}
	if _, err := ParseLevels(raw, 20); err == nil {
		t.Fatal("expected an error for a malformed price field")
	}
}

func TestParseLevels_RespectsMaxDepth(t *testing.T) {
	raw := [][]string{
		{"1", "1"}, {"2", "1"}, {"3", "1"}, {"4", "1"}, {"5", "1"},
	}
	levels, err := ParseLevels(raw, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("expected depth to be capped at 3, got %d", len(levels))
	}
}
