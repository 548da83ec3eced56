package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	// Body тело запроса: nil, строка (отправляется как есть) или значение, которое кодируется в JSON.
	Body any
}

// Response результат запроса с уже прочитанным телом.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// DecodeJSON разбирает тело ответа в v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body %q: %w", r.Body, err)
	}
	return nil
}

// MakeRequest выполняет запрос к роутеру. Тело запроса по умолчанию помечается как application/json.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) (*Response, error) {
	options := RequestOptions{
		headers: map[string]string{"Content-Type": "application/json"},
	}
	for _, opt := range opts {
		opt(&options)
	}

	body, bodyErr := requestBody(args.Body)
	if bodyErr != nil {
		return nil, bodyErr
	}

	request := httptest.NewRequest(args.Method, args.URL, body)
	for k, v := range options.headers {
		request.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)

	res := recorder.Result()
	defer res.Body.Close()

	raw, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %s", readErr.Error())
	}
	return &Response{Status: res.StatusCode, Header: res.Header, Body: raw}, nil
}

func requestBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return bytes.NewReader([]byte(b)), nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %s", err.Error())
		}
		return bytes.NewReader(raw), nil
	}
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		fn.headers[name] = value
	}
}

// WithBearer добавляет заголовок Authorization с токеном подключенного счета.
func WithBearer(token string) func(*RequestOptions) {
	return func(fn *RequestOptions) {
		if token != "" {
			fn.headers["Authorization"] = "Bearer " + token
		}
	}
}
