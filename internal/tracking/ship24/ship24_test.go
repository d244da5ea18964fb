package ship24

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/parceldesk/internal/constants"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"trackingNumber":"1Z999"}`)
	secret := "topsecret"

	if err := VerifyWebhookSignature(secret, map[string]string{
		"X-Ship24-Signature": signBody(secret, body),
	}, body); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}

	// 备用签名头同样有效
	if err := VerifyWebhookSignature(secret, map[string]string{
		"X-Signature": signBody(secret, body),
	}, body); err != nil {
		t.Fatalf("fallback header rejected: %v", err)
	}

	// 头名大小写不敏感，签名十六进制大小写不敏感
	upper := map[string]string{"x-ship24-signature": "ABC"}
	upper["x-ship24-signature"] = signBody(secret, body)
	if err := VerifyWebhookSignature(secret, upper, body); err != nil {
		t.Fatalf("lowercase header rejected: %v", err)
	}

	// 签名后被篡改的 body 必须拒绝
	tampered := []byte(`{"trackingNumber":"1Z999","status":"delivered"}`)
	if err := VerifyWebhookSignature(secret, map[string]string{
		"X-Ship24-Signature": signBody(secret, body),
	}, tampered); err == nil {
		t.Fatal("tampered body accepted")
	}

	// 缺少签名头必须拒绝
	if err := VerifyWebhookSignature(secret, nil, body); err == nil {
		t.Fatal("missing signature header accepted")
	}

	// 未配置 secret 时跳过校验
	if err := VerifyWebhookSignature("", map[string]string{"X-Signature": "garbage"}, body); err != nil {
		t.Fatalf("unconfigured secret should skip verification: %v", err)
	}
}

func TestParseWebhookEventShapeVariants(t *testing.T) {
	variants := []string{
		`{"trackingNumber":"AB12","status":"Delivered","courier":"UPS"}`,
		`{"data":{"trackingNumber":"AB12","status":"Delivered","courier":"UPS"}}`,
		`{"shipment":{"tracking_number":"AB12","currentStatus":"Delivered","carrier":"UPS"}}`,
	}
	for _, body := range variants {
		event := ParseWebhookEvent([]byte(body))
		if event.TrackingNumber != "AB12" {
			t.Fatalf("body %s: tracking number = %q", body, event.TrackingNumber)
		}
		if event.RawStatus != "Delivered" {
			t.Fatalf("body %s: raw status = %q", body, event.RawStatus)
		}
		if event.Status != constants.ShipmentStatusDelivered {
			t.Fatalf("body %s: status = %q", body, event.Status)
		}
		if event.Courier != "UPS" {
			t.Fatalf("body %s: courier = %q", body, event.Courier)
		}
	}
}

func TestParseWebhookEventFieldPathPriority(t *testing.T) {
	// 顶层字段优先于嵌套字段
	event := ParseWebhookEvent([]byte(`{"trackingNumber":"TOP","data":{"trackingNumber":"NESTED"}}`))
	if event.TrackingNumber != "TOP" {
		t.Fatalf("expected top-level value to win, got %q", event.TrackingNumber)
	}

	// null 视为缺失，继续探测后续路径
	event = ParseWebhookEvent([]byte(`{"trackingNumber":null,"data":{"trackingNo":"NESTED"}}`))
	if event.TrackingNumber != "NESTED" {
		t.Fatalf("expected nested fallback, got %q", event.TrackingNumber)
	}
}

func TestParseWebhookEventGarbageBody(t *testing.T) {
	event := ParseWebhookEvent([]byte("not json"))
	if event.TrackingNumber != "" || event.RawStatus != "" || event.Courier != "" {
		t.Fatalf("garbage body should yield empty event, got %+v", event)
	}
	if len(event.Checkpoints) != 0 {
		t.Fatalf("garbage body should yield no checkpoints, got %d", len(event.Checkpoints))
	}

	event = ParseWebhookEvent(nil)
	if event.TrackingNumber != "" {
		t.Fatalf("empty body should yield empty event, got %+v", event)
	}
}

func TestMapStatusKnownRules(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Delivered", constants.ShipmentStatusDelivered},
		{"package delivered to mailbox", constants.ShipmentStatusDelivered},
		{"out_for_delivery", constants.ShipmentStatusOutForDelivery},
		{"courier out-for-delivery now", constants.ShipmentStatusOutForDelivery},
		{"In Transit", constants.ShipmentStatusInTransit},
		{"in transit caused delay", constants.ShipmentStatusInTransit},
		{"Failed delivery attempt", constants.ShipmentStatusFailedAttempt},
		{"Exception at customs", constants.ShipmentStatusException},
		{"carrier error", constants.ShipmentStatusException},
		{"return in progress", constants.ShipmentStatusReturnInProgress},
		{"Pending", constants.ShipmentStatusPending},
		{"shipment created", constants.ShipmentStatusPending},
	}
	for _, tc := range cases {
		if got := MapStatus(tc.raw); got != tc.want {
			t.Fatalf("MapStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestMapStatusRuleOrder(t *testing.T) {
	// 规则按声明顺序生效：同时包含 pending 与 transit 时 transit 规则更靠前
	if got := MapStatus("pending but already in transit"); got != constants.ShipmentStatusInTransit {
		t.Fatalf("rule order violated: got %q", got)
	}
	// delivered 规则最靠前，return delivered 也由它接住
	if got := MapStatus("return delivered to sender"); got != constants.ShipmentStatusDelivered {
		t.Fatalf("rule order violated: got %q", got)
	}
	// exception 先于 pending
	if got := MapStatus("pending exception review"); got != constants.ShipmentStatusException {
		t.Fatalf("rule order violated: got %q", got)
	}
}

func TestMapStatusFallbackToken(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Customs Hold", "customs_hold"},
		{"  Awaiting   Pickup  ", "awaiting_pickup"},
		{"lost", "lost"},
	}
	for _, tc := range cases {
		got := MapStatus(tc.raw)
		if got != tc.want {
			t.Fatalf("MapStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
		if got == "" {
			t.Fatalf("fallback token must never be empty for %q", tc.raw)
		}
	}
	if got := MapStatus("   "); got != "" {
		t.Fatalf("blank status should map to empty, got %q", got)
	}
}

func TestParseWebhookEventCheckpoints(t *testing.T) {
	body := []byte(`{
		"trackingNumber": "CP1",
		"events": [
			{"description": "Arrived at facility", "location": "Memphis, TN", "time": "2026-03-01T10:00:00Z"},
			{"status": "Departed", "city": "Memphis", "state": "TN", "country": "US", "date": "2026-03-01"},
			{"event": "Out for delivery", "address": "Main St depot"},
			{}
		]
	}`)
	event := ParseWebhookEvent(body)
	if len(event.Checkpoints) != 4 {
		t.Fatalf("expected 4 checkpoints, got %d", len(event.Checkpoints))
	}

	first := event.Checkpoints[0]
	if first.Description != "Arrived at facility" || first.Location != "Memphis, TN" {
		t.Fatalf("unexpected first checkpoint: %+v", first)
	}
	want, _ := time.Parse(time.RFC3339, "2026-03-01T10:00:00Z")
	if !first.Time.Equal(want) {
		t.Fatalf("unexpected first checkpoint time: %v", first.Time)
	}

	second := event.Checkpoints[1]
	if second.Description != "Departed" {
		t.Fatalf("description should fall back to status, got %q", second.Description)
	}
	if second.Location != "Memphis, TN, US" {
		t.Fatalf("location should join city/state/country, got %q", second.Location)
	}

	third := event.Checkpoints[2]
	if third.Description != "Out for delivery" {
		t.Fatalf("description should fall back to event, got %q", third.Description)
	}
	if third.Location != "Main St depot" {
		t.Fatalf("location should fall back to address, got %q", third.Location)
	}

	fourth := event.Checkpoints[3]
	if fourth.Description != "Scan" {
		t.Fatalf("empty checkpoint should default description to Scan, got %q", fourth.Description)
	}
	if fourth.Location != "" {
		t.Fatalf("empty checkpoint should have no location, got %q", fourth.Location)
	}
	if time.Since(fourth.Time) > time.Minute {
		t.Fatalf("missing time should default to now, got %v", fourth.Time)
	}
}

func TestParseWebhookEventCheckpointPathOrder(t *testing.T) {
	body := []byte(`{
		"events": [{"description": "top"}],
		"data": {"events": [{"description": "nested"}]}
	}`)
	event := ParseWebhookEvent(body)
	if len(event.Checkpoints) != 1 || event.Checkpoints[0].Description != "top" {
		t.Fatalf("expected top-level events to win, got %+v", event.Checkpoints)
	}
}
