package myhttpclient

import (
	"context"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second
)

type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

func New(timeout time.Duration) HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return newJSONHTTPClient(timeout)
}
