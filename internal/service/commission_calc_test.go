package service

import (
	"testing"

	"github.com/slideboard-next/internal/constants"
	"github.com/slideboard-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestNormalizeRate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"negative", "-1", "0"},
		{"zero", "0", "0"},
		{"fraction", "0.05", "0.05"},
		{"one", "1", "1"},
		{"percent", "5", "0.05"},
		{"hundred", "100", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, _ := decimal.NewFromString(tc.raw)
			want, _ := decimal.NewFromString(tc.want)
			got := normalizeRate(raw)
			if !got.Equal(want) {
				t.Fatalf("normalizeRate(%s) = %s, want %s", tc.raw, got, want)
			}
		})
	}
}

func TestResolveTieredRateFirstMatch(t *testing.T) {
	channel := &models.Channel{
		CommissionRate: decimal.NewFromInt(3),
		TieredRates:    `[{"minAmount":0,"maxAmount":1000,"rate":5},{"minAmount":1000,"maxAmount":5000,"rate":8},{"minAmount":5000,"rate":10}]`,
	}

	cases := []struct {
		name    string
		amount  string
		want    string
		matched bool
	}{
		{"first_bracket", "500", "0.05", true},
		{"boundary_moves_to_next", "1000", "0.08", true},
		{"middle_bracket", "4999.99", "0.08", true},
		{"unbounded_tail", "100000", "0.1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, _ := decimal.NewFromString(tc.amount)
			want, _ := decimal.NewFromString(tc.want)
			got, matched := resolveTieredRate(channel, amount)
			if matched != tc.matched {
				t.Fatalf("matched = %v, want %v", matched, tc.matched)
			}
			if !got.Equal(want) {
				t.Fatalf("rate = %s, want %s", got, want)
			}
		})
	}
}

func TestResolveTieredRateFallsBackToBaseRate(t *testing.T) {
	cases := []struct {
		name        string
		tieredRates string
		amount      string
	}{
		{"malformed_json", `{{not-json`, "1000"},
		{"non_array", `{"rate":5}`, "1000"},
		{"empty_array", `[]`, "1000"},
		{"no_match", `[{"minAmount":5000,"rate":8}]`, "1000"},
		{"empty_string", ``, "1000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			channel := &models.Channel{
				CommissionRate: decimal.NewFromInt(3),
				TieredRates:    tc.tieredRates,
			}
			amount, _ := decimal.NewFromString(tc.amount)
			got, matched := resolveTieredRate(channel, amount)
			if matched {
				t.Fatalf("expected fallback, got tier match")
			}
			if want, _ := decimal.NewFromString("0.03"); !got.Equal(want) {
				t.Fatalf("rate = %s, want base rate 0.03", got)
			}
		})
	}
}

func TestEffectiveCooperationMode(t *testing.T) {
	channel := &models.Channel{CooperationMode: constants.CooperationModeBasePrice}

	order := &models.Order{CooperationMode: constants.CooperationModeCommission}
	if got := effectiveCooperationMode(order, channel); got != constants.CooperationModeCommission {
		t.Fatalf("order override should win, got %s", got)
	}

	order = &models.Order{}
	if got := effectiveCooperationMode(order, channel); got != constants.CooperationModeBasePrice {
		t.Fatalf("channel default should apply, got %s", got)
	}

	if got := effectiveCooperationMode(&models.Order{}, &models.Channel{}); got != constants.CooperationModeCommission {
		t.Fatalf("empty modes should fall back to COMMISSION, got %s", got)
	}
}

func TestCalculateCommissionRateBased(t *testing.T) {
	amount, _ := decimal.NewFromString("1000")
	order := &models.Order{TotalAmount: models.NewMoneyFromDecimal(amount)}
	channel := &models.Channel{
		CooperationMode: constants.CooperationModeCommission,
		CommissionType:  constants.CommissionTypeFixed,
		CommissionRate:  decimal.NewFromInt(10),
	}

	result := calculateCommission(order, channel, nil)
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if want, _ := decimal.NewFromString("100"); !result.Amount.Equal(want) {
		t.Fatalf("amount = %s, want 100", result.Amount)
	}
	if want, _ := decimal.NewFromString("0.1"); !result.Rate.Equal(want) {
		t.Fatalf("rate = %s, want 0.1", result.Rate)
	}
	if result.Mode != constants.CooperationModeCommission {
		t.Fatalf("mode = %s", result.Mode)
	}
	if result.Formula == "" || result.Remark == "" {
		t.Fatal("expected formula trace and remark")
	}
}

func TestCalculateCommissionNonPositiveReturnsNil(t *testing.T) {
	amount, _ := decimal.NewFromString("1000")
	order := &models.Order{TotalAmount: models.NewMoneyFromDecimal(amount)}

	zeroRate := &models.Channel{
		CooperationMode: constants.CooperationModeCommission,
		CommissionRate:  decimal.Zero,
	}
	if result := calculateCommission(order, zeroRate, nil); result != nil {
		t.Fatalf("zero rate should yield nil, got %+v", result)
	}

	marginChannel := &models.Channel{CooperationMode: constants.CooperationModeBasePrice}
	negative, _ := decimal.NewFromString("-50")
	margin := &marginComputation{total: negative}
	if result := calculateCommission(order, marginChannel, margin); result != nil {
		t.Fatalf("negative margin should yield nil, got %+v", result)
	}
	if result := calculateCommission(order, marginChannel, nil); result != nil {
		t.Fatalf("missing margin should yield nil, got %+v", result)
	}
}

func TestCalculateCommissionZeroOrderAmountReturnsNil(t *testing.T) {
	order := &models.Order{TotalAmount: models.NewMoneyFromDecimal(decimal.Zero)}

	rateChannel := &models.Channel{
		CooperationMode: constants.CooperationModeCommission,
		CommissionRate:  decimal.NewFromInt(10),
	}
	if result := calculateCommission(order, rateChannel, nil); result != nil {
		t.Fatalf("zero-amount order should yield nil, got %+v", result)
	}

	marginChannel := &models.Channel{CooperationMode: constants.CooperationModeBasePrice}
	profit, _ := decimal.NewFromString("100")
	margin := &marginComputation{total: profit}
	if result := calculateCommission(order, marginChannel, margin); result != nil {
		t.Fatalf("zero-amount order should yield nil even with positive margin, got %+v", result)
	}
}

func TestCalculateCommissionUnknownModeFallsBack(t *testing.T) {
	amount, _ := decimal.NewFromString("200")
	order := &models.Order{TotalAmount: models.NewMoneyFromDecimal(amount)}
	channel := &models.Channel{
		CooperationMode: "SOMETHING_ELSE",
		CommissionRate:  decimal.NewFromInt(50),
	}

	result := calculateCommission(order, channel, nil)
	if result == nil {
		t.Fatal("expected fallback calculation, got nil")
	}
	if want, _ := decimal.NewFromString("100"); !result.Amount.Equal(want) {
		t.Fatalf("amount = %s, want 100", result.Amount)
	}
}
