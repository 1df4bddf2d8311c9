package types_test

import (
	"testing"

	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

func TestCategories_Order(t *testing.T) {
	want := []types.RiskCategory{
		types.CategoryMarket,
		types.CategoryCredit,
		types.CategoryLiquidity,
		types.CategoryOperational,
		types.CategoryRegulatory,
	}

	got := types.Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i, c := range want {
		if got[i] != c {
			t.Errorf("position %d: expected %s, got %s", i, c, got[i])
		}
	}
}

func TestRiskCategory_Label(t *testing.T) {
	tests := []struct {
		category types.RiskCategory
		want     string
	}{
		{types.CategoryMarket, "Market Risk"},
		{types.CategoryCredit, "Credit Risk"},
		{types.CategoryLiquidity, "Liquidity Risk"},
		{types.CategoryOperational, "Operational Risk"},
		{types.CategoryRegulatory, "Regulatory/Compliance Risk"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := tt.category.Label(); got != tt.want {
				t.Errorf("expected label %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseRiskCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid market", "MARKET", false},
		{"valid regulatory", "REGULATORY", false},
		{"empty", "", true},
		{"lowercase", "market", true},
		{"label not id", "Market Risk", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.ParseRiskCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRiskCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestScore_Validate(t *testing.T) {
	tests := []struct {
		name    string
		score   types.Score
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"mid", 0.73, false},
		{"negative", -0.01, true},
		{"above one", 1.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.score.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Score.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScore_Round2(t *testing.T) {
	tests := []struct {
		name  string
		score types.Score
		want  types.Score
	}{
		{"already rounded", 0.64, 0.64},
		{"rounds up", 0.735, 0.74},
		{"rounds down", 0.734, 0.73},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.score.Round2(); got != tt.want {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReportID(t *testing.T) {
	id := types.NewReportID()
	if err := id.Validate(); err != nil {
		t.Errorf("generated report ID should be valid: %v", err)
	}

	if err := types.ReportID("").Validate(); err == nil {
		t.Error("empty report ID should be invalid")
	}
	if err := types.ReportID("not-a-uuid").Validate(); err == nil {
		t.Error("non-UUID report ID should be invalid")
	}
}

func TestParseRunStatus(t *testing.T) {
	for _, s := range []string{"RUNNING", "COMPLETED", "FAILED"} {
		if _, err := types.ParseRunStatus(s); err != nil {
			t.Errorf("ParseRunStatus(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := types.ParseRunStatus("DONE"); err == nil {
		t.Error("ParseRunStatus should reject unknown status")
	}
}
