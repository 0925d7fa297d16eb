package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Connection interface {
	Request(ctx context.Context, endpoint *url.URL) (*resty.Response, error)
}

type ClientHost struct {
	client  *resty.Client
	baseUrl *url.URL
}

type Client struct {
	Connection Connection
}

// Request resolves the endpoint's path and query against the host's base url and issues a GET.
// A non-2xx status is not an error here, callers decide what a status means.
func (conn *ClientHost) Request(ctx context.Context, endpoint *url.URL) (*resty.Response, error) {
	target := *conn.baseUrl
	target.Path = strings.TrimSuffix(conn.baseUrl.Path, "/") + "/" + strings.TrimPrefix(endpoint.Path, "/")
	target.RawQuery = endpoint.RawQuery

	return conn.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(target.String())
}

func ClientFactory(baseUrl string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, fmt.Errorf("error parsing base url %s: %w", baseUrl, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %s must include scheme and host", baseUrl)
	}

	client := resty.New().
		SetTimeout(timeout)

	clientHost := &ClientHost{
		client:  client,
		baseUrl: parsed,
	}

	return &Client{
		Connection: clientHost,
	}, nil
}
