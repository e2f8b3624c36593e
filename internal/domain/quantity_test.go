package domain

import "testing"

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		isNil   bool
		wantErr bool
	}{
		{"", 0, true, false},
		{"2", 2, false, false},
		{"0.5", 0.5, false, false},
		{"1/4", 0.25, false, false},
		{"1 1/2", 1.5, false, false},
		{"abc", 0, false, true},
		{"1/0", 0, false, true},
		{"-2", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.isNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

