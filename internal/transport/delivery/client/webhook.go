package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60 * time.Second
)

// WebhookClient доставляет уведомления POST-запросом с JSON телом уведомления.
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

func NewWebhook(url string) WebhookClient {
	return WebhookClient{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

// Deliver отправляет уведомление. Любой ответ 2xx считается доставкой. На http.StatusTooManyRequests
// возвращает TooManyRequestError, на прочие статусы - StatusCodeError.
//
//nolint:nonamedreturns
func (c WebhookClient) Deliver(ctx context.Context, notification domain.Notification) (err error) {
	payload, marshalErr := json.Marshal(notification)
	if marshalErr != nil {
		return fmt.Errorf("marshal notification: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", notification.ID)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		// дочитываем тело, чтобы соединение вернулось в пул
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return NewStatusCodeError(resp.StatusCode)
	}
	return nil
}

// parseRetryAfter секунды из заголовка Retry-After. При ошибке или значении вне допустимого диапазона
// возвращает 60 секунд.
func parseRetryAfter(value string) time.Duration {
	retryAfter, err := decimal.NewFromString(value)
	if err != nil ||
		retryAfter.LessThan(decimal.NewFromInt(minRetryAfter)) ||
		retryAfter.GreaterThan(decimal.NewFromInt(maxRetryAfter)) {
		return defaultRetryAfter
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
