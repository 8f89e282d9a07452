package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDepartmentOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []DepartmentOption
	}{
		{
			name: "plain label",
			raw:  `["Retail Banking"]`,
			want: []DepartmentOption{{Value: "retail_banking", Label: "Retail Banking"}},
		},
		{
			name: "labels are normalized",
			raw:  `["  Risk & Compliance ", "Trade-Finance Ops"]`,
			want: []DepartmentOption{
				{Value: "risk_compliance", Label: "  Risk & Compliance "},
				{Value: "trade-finance_ops", Label: "Trade-Finance Ops"},
			},
		},
		{
			name: "unicode spaces separate words",
			raw:  "[\"Retail\u00a0Banking\", \"\u2003Trade\u3000Finance\u00a0\"]",
			want: []DepartmentOption{
				{Value: "retail_banking", Label: "Retail\u00a0Banking"},
				{Value: "trade_finance", Label: "\u2003Trade\u3000Finance\u00a0"},
			},
		},
		{
			name: "objects kept as given",
			raw:  `[{"value":"hr","label":"Human Resources"}]`,
			want: []DepartmentOption{{Value: "hr", Label: "Human Resources"}},
		},
		{
			name: "invalid entries dropped",
			raw:  `[42, null, {"value":"x"}, {"label":"y"}, "Treasury"]`,
			want: []DepartmentOption{{Value: "treasury", Label: "Treasury"}},
		},
		{
			name: "numeric object fields stringified",
			raw:  `[{"value":1000000,"label":"Unit"}]`,
			want: []DepartmentOption{{Value: "1000000", Label: "Unit"}},
		},
		{name: "empty input", raw: "", want: DefaultDepartments},
		{name: "not json", raw: "not json", want: DefaultDepartments},
		{name: "not an array", raw: `{"value":"a","label":"b"}`, want: DefaultDepartments},
		{name: "empty array", raw: `[]`, want: DefaultDepartments},
		{name: "nothing usable", raw: `[1, false, {}]`, want: DefaultDepartments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDepartmentOptions(tt.raw, DefaultDepartments))
		})
	}
}

func TestParseDepartmentOptionsReturnsCopyOfFallback(t *testing.T) {
	got := ParseDepartmentOptions("", DefaultDepartments)
	require.Len(t, got, 7)

	got[0].Label = "mutated"
	assert.Equal(t, "Banking Operations", DefaultDepartments[0].Label)
}

func TestNormalizeDepartmentValue(t *testing.T) {
	assert.Equal(t, "corporate_banking", NormalizeDepartmentValue("Corporate Banking"))
	assert.Equal(t, "a_b", NormalizeDepartmentValue("A\t\tB!"))
	assert.Equal(t, "", NormalizeDepartmentValue("***"))
}
