package ship24

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/parceldesk/internal/constants"
)

var (
	// ErrSignatureInvalid 签名校验失败
	ErrSignatureInvalid = errors.New("ship24 signature invalid")
)

// 签名头候选（按优先级）
var signatureHeaders = []string{"X-Ship24-Signature", "X-Signature"}

// WebhookEvent 规范化后的 webhook 事件
type WebhookEvent struct {
	TrackingNumber string
	RawStatus      string
	Status         string
	Courier        string
	Checkpoints    []CheckpointEvent
	Raw            map[string]interface{}
}

// CheckpointEvent 规范化后的轨迹节点
type CheckpointEvent struct {
	Description string
	Location    string
	Time        time.Time
}

// 字段探测路径。Ship24 的载荷形态并不固定：字段可能在顶层，
// 也可能包在 data / shipment / tracking 里，字段名存在多个变体。
// 顺序即优先级，取第一个存在且非 null 的值，改动顺序会破坏对已知
// 载荷形态的兼容。
var trackingNumberPaths = [][]string{
	{"trackingNumber"},
	{"tracking_number"},
	{"trackingNo"},
	{"trackingno"},
	{"data", "trackingNumber"},
	{"data", "tracking_number"},
	{"data", "trackingNo"},
	{"shipment", "trackingNumber"},
	{"shipment", "tracking_number"},
	{"shipment", "trackingNo"},
}

// event / type 只在顶层出现过，嵌套对象里不查这两个键
var statusPaths = [][]string{
	{"status"},
	{"currentStatus"},
	{"event"},
	{"type"},
	{"data", "status"},
	{"data", "currentStatus"},
	{"shipment", "status"},
	{"shipment", "currentStatus"},
}

var courierPaths = [][]string{
	{"courier"},
	{"carrier"},
	{"data", "courier"},
	{"data", "carrier"},
	{"shipment", "courier"},
	{"shipment", "carrier"},
}

var checkpointPaths = [][]string{
	{"events"},
	{"checkpoints"},
	{"data", "events"},
	{"data", "checkpoints"},
	{"tracking", "events"},
	{"tracking", "checkpoints"},
	{"shipment", "events"},
	{"shipment", "checkpoints"},
}

// 轨迹节点时间字段候选
var checkpointTimeKeys = []string{"time", "date", "datetime", "timestamp", "eventTime", "scanTime"}

// VerifyWebhookSignature 校验入站 webhook 的 HMAC-SHA256 签名
// secret 为空时跳过校验（联调模式），线上必须配置。
func VerifyWebhookSignature(secret string, headers map[string]string, body []byte) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}

	provided := ""
	for _, name := range signatureHeaders {
		if value := strings.TrimSpace(getHeaderValue(headers, name)); value != "" {
			provided = value
			break
		}
	}
	if provided == "" {
		return ErrSignatureInvalid
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(strings.ToLower(provided)), []byte(expected)) {
		return ErrSignatureInvalid
	}
	return nil
}

// ParseWebhookEvent 解析并规范化 webhook 载荷
// 永不失败：非法 JSON 视为空对象，缺失字段全部走默认值。
func ParseWebhookEvent(body []byte) *WebhookEvent {
	raw := map[string]interface{}{}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &raw)
	}

	event := &WebhookEvent{
		TrackingNumber: firstString(raw, trackingNumberPaths),
		RawStatus:      firstString(raw, statusPaths),
		Courier:        firstString(raw, courierPaths),
		Raw:            raw,
	}
	event.Status = MapStatus(event.RawStatus)

	if items := firstArray(raw, checkpointPaths); len(items) > 0 {
		event.Checkpoints = make([]CheckpointEvent, 0, len(items))
		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			event.Checkpoints = append(event.Checkpoints, normalizeCheckpoint(entry))
		}
	}
	return event
}

// MapStatus 将承运商的自由状态文本映射为内部状态枚举
// 子串匹配、大小写不敏感且顺序敏感：规则按声明顺序测试，第一条命中即返回。
// 无规则命中时回落为「小写 + 空白转下划线」的透传 token，从不拒绝。
func MapStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	switch {
	case strings.Contains(s, "delivered"):
		return constants.ShipmentStatusDelivered
	case strings.Contains(s, "out_for_delivery"), strings.Contains(s, "out-for-delivery"):
		return constants.ShipmentStatusOutForDelivery
	case strings.Contains(s, "transit"):
		return constants.ShipmentStatusInTransit
	case strings.Contains(s, "failed") && strings.Contains(s, "attempt"):
		return constants.ShipmentStatusFailedAttempt
	case strings.Contains(s, "exception"), strings.Contains(s, "error"):
		return constants.ShipmentStatusException
	case strings.Contains(s, "return") && strings.Contains(s, "progress"):
		return constants.ShipmentStatusReturnInProgress
	case strings.Contains(s, "return") && strings.Contains(s, "delivered"):
		return constants.ShipmentStatusReturnDelivered
	case strings.Contains(s, "pending"), strings.Contains(s, "created"):
		return constants.ShipmentStatusPending
	}
	return strings.Join(strings.Fields(s), "_")
}

func normalizeCheckpoint(entry map[string]interface{}) CheckpointEvent {
	description := pickString(entry, "description", "status", "event")
	if description == "" {
		description = "Scan"
	}

	location := pickString(entry, "location")
	if location == "" {
		parts := make([]string, 0, 3)
		for _, key := range []string{"city", "state", "country"} {
			if value := readString(entry, key); value != "" {
				parts = append(parts, value)
			}
		}
		location = strings.Join(parts, ", ")
	}
	if location == "" {
		location = pickString(entry, "address")
	}

	eventTime := time.Now()
	for _, key := range checkpointTimeKeys {
		value, ok := entry[key]
		if !ok || value == nil {
			continue
		}
		if parsed, ok := parseEventTime(value); ok {
			eventTime = parsed
			break
		}
	}

	return CheckpointEvent{
		Description: description,
		Location:    location,
		Time:        eventTime,
	}
}

func parseEventTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		layouts := []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		// Unix 时间戳，毫秒级的按 13 位判断
		if v <= 0 {
			return time.Time{}, false
		}
		if v >= 1e12 {
			return time.UnixMilli(int64(v)).UTC(), true
		}
		return time.Unix(int64(v), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

func firstString(raw map[string]interface{}, paths [][]string) string {
	for _, path := range paths {
		value, ok := lookupPath(raw, path)
		if !ok {
			continue
		}
		if s := stringify(value); s != "" {
			return s
		}
	}
	return ""
}

func firstArray(raw map[string]interface{}, paths [][]string) []interface{} {
	for _, path := range paths {
		value, ok := lookupPath(raw, path)
		if !ok {
			continue
		}
		if items, ok := value.([]interface{}); ok {
			return items
		}
	}
	return nil
}

func lookupPath(raw map[string]interface{}, path []string) (interface{}, bool) {
	var current interface{} = raw
	for _, key := range path {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok := node[key]
		if !ok || value == nil {
			return nil, false
		}
		current = value
	}
	return current, true
}

func pickString(entry map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value := readString(entry, key); value != "" {
			return value
		}
	}
	return ""
}

func readString(entry map[string]interface{}, key string) string {
	value, ok := entry[key]
	if !ok || value == nil {
		return ""
	}
	return stringify(value)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func getHeaderValue(headers map[string]string, name string) string {
	if len(headers) == 0 {
		return ""
	}
	if value, ok := headers[name]; ok {
		return value
	}
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}
