package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DepartmentOption is one selectable department on the sign-up form.
type DepartmentOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultDepartments is used whenever no usable override is configured.
var DefaultDepartments = []DepartmentOption{
	{Value: "banking_operations", Label: "Banking Operations"},
	{Value: "risk_management", Label: "Risk Management"},
	{Value: "credit_analysis", Label: "Credit Analysis"},
	{Value: "treasury", Label: "Treasury"},
	{Value: "retail_banking", Label: "Retail Banking"},
	{Value: "corporate_banking", Label: "Corporate Banking"},
	{Value: "compliance", Label: "Compliance"},
}

// Whitespace covers Unicode separators and BOM as well as ASCII, so labels
// pasted with non-breaking spaces still split into words.
var (
	disallowedChars = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	whitespaceRun   = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// NormalizeDepartmentValue turns a display label into a stable option value,
// e.g. "Retail Banking" -> "retail_banking".
func NormalizeDepartmentValue(label string) string {
	v := strings.ToLower(label)
	v = disallowedChars.ReplaceAllString(v, "")
	v = strings.TrimFunc(v, isDepartmentSpace)
	return whitespaceRun.ReplaceAllString(v, "_")
}

func isDepartmentSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF'
}

// ParseDepartmentOptions parses a JSON array of department labels or
// {value, label} objects. The fallback is returned whole when raw is empty,
// malformed, not an array, or yields no usable entry.
func ParseDepartmentOptions(raw string, fallback []DepartmentOption) []DepartmentOption {
	if strings.TrimSpace(raw) == "" {
		return copyOptions(fallback)
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return copyOptions(fallback)
	}

	options := make([]DepartmentOption, 0, len(items))
	for _, item := range items {
		if opt, ok := parseDepartmentItem(item); ok {
			options = append(options, opt)
		}
	}
	if len(options) == 0 {
		return copyOptions(fallback)
	}
	return options
}

func parseDepartmentItem(item json.RawMessage) (DepartmentOption, bool) {
	item = bytes.TrimSpace(item)
	if len(item) > 0 && item[0] == '"' {
		var label string
		if err := json.Unmarshal(item, &label); err != nil {
			return DepartmentOption{}, false
		}
		return DepartmentOption{Value: NormalizeDepartmentValue(label), Label: label}, true
	}

	var obj map[string]any
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		return DepartmentOption{}, false
	}
	value, label := obj["value"], obj["label"]
	if !truthy(value) || !truthy(label) {
		return DepartmentOption{}, false
	}
	return DepartmentOption{Value: stringify(value), Label: stringify(label)}, true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func copyOptions(src []DepartmentOption) []DepartmentOption {
	out := make([]DepartmentOption, len(src))
	copy(out, src)
	return out
}
