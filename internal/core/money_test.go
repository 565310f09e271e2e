package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToPaise(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "integer rupees", input: "123", want: 12300},
		{name: "two decimals", input: "123.45", want: 12345},
		{name: "comma separator", input: "123,45", want: 12345},
		{name: "single decimal", input: "12.5", want: 1250},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.345", want: 1235},
		{name: "leading dot", input: ".50", want: 50},
		{name: "surrounding whitespace", input: "  42.00  ", want: 4200},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "zero with decimals", input: "0.00", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "explicit plus sign", input: "+5", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
		{name: "letters in fraction", input: "12.x5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToPaise(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseDecimalToPaise(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalToPaise(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToPaise(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoney_Rupees(t *testing.T) {
	if got := (Money{Paise: 12345}).Rupees(); got != 123.45 {
		t.Errorf("Rupees() = %v, want 123.45", got)
	}
	if got := (Money{Paise: -250}).Rupees(); got != -2.5 {
		t.Errorf("Rupees() = %v, want -2.5", got)
	}
}
