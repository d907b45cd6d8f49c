package common

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"обычная сумма", "10.5", "10.5", false},
		{"пустая строка — ноль", "", "0", false},
		{"пробелы — ноль", "  ", "0", false},
		{"отрицательная сумма разбирается", "-3", "-3", false},
		{"мусор — ошибка", "abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMoney(%q) — ожидалась ошибка", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q): %v", tt.in, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseMoney(%q) = %s, ожидалось %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	d := decimal.RequireFromString("0.123456789")
	if got := MoneyString(d); got != "0.12345679" {
		t.Errorf("MoneyString = %s, ожидалось округление до 8 знаков", got)
	}
}
