package ship24

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrConfigInvalid 客户端配置缺失或非法
	ErrConfigInvalid = errors.New("ship24 config invalid")
	// ErrRequestFailed 请求 Ship24 失败
	ErrRequestFailed = errors.New("ship24 request failed")
	// ErrResponseInvalid Ship24 响应无法解析
	ErrResponseInvalid = errors.New("ship24 response invalid")
)

const defaultBaseURL = "https://api.ship24.com"

// ClientConfig Ship24 REST 客户端配置
type ClientConfig struct {
	APIKey    string
	BaseURL   string
	TimeoutMS int
}

// RegisterTrackerInput 注册 tracker 的入参
type RegisterTrackerInput struct {
	TrackingNumber string
	Courier        string
}

// RegisterTracker 向 Ship24 注册 tracker
// 注册成功后 Ship24 才会对该运单号推送 webhook。
func RegisterTracker(ctx context.Context, cfg ClientConfig, input RegisterTrackerInput) (map[string]interface{}, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	trackingNumber := strings.TrimSpace(input.TrackingNumber)
	if trackingNumber == "" {
		return nil, fmt.Errorf("%w: tracking number is required", ErrConfigInvalid)
	}

	params := map[string]interface{}{
		"trackingNumber": trackingNumber,
	}
	if courier := strings.TrimSpace(input.Courier); courier != "" {
		params["courier"] = courier
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	endpoint := resolveBaseURL(cfg.BaseURL) + "/public/v1/trackers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: resolveTimeout(cfg.TimeoutMS)}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	result := map[string]interface{}{}
	if len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
		}
	}
	return result, nil
}

func resolveBaseURL(baseURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return defaultBaseURL
	}
	return trimmed
}

func resolveTimeout(timeoutMS int) time.Duration {
	if timeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(timeoutMS) * time.Millisecond
}
