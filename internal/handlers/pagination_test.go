package handlers

import "testing"

func TestParsePaginationDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Errorf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 50 {
		t.Errorf("expected 3/50, got %d/%d", page, limit)
	}
}

func TestParsePaginationRejectsGarbage(t *testing.T) {
	tests := [][2]string{
		{"0", ""},
		{"-1", ""},
		{"abc", ""},
		{"", "0"},
		{"", "nope"},
	}
	for _, tt := range tests {
		if _, _, err := parsePaginationParams(tt[0], tt[1]); err == nil {
			t.Errorf("expected error for page=%q limit=%q", tt[0], tt[1])
		}
	}
}
