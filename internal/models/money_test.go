package models

import "testing"

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("129.999")
	if err != nil {
		t.Fatalf("parse amount failed: %v", err)
	}
	// 入口即收敛到 2 位小数
	if got := m.String(); got != "130.00" {
		t.Fatalf("amount = %q, want %q", got, "130.00")
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for malformed amount")
	}
}

func TestMoneyMarshalJSONFixedScale(t *testing.T) {
	m, err := NewMoneyFromString("23.5")
	if err != nil {
		t.Fatalf("parse amount failed: %v", err)
	}
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// 金额一律以字符串输出，避免前端浮点误差
	if string(b) != `"23.50"` {
		t.Fatalf("marshal = %s, want \"23.50\"", b)
	}
}
