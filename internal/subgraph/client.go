package subgraph

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hasura/go-graphql-client"
)

// DefaultTimeout bounds a subgraph request when no HTTP client is supplied.
const DefaultTimeout = 10 * time.Second

// Client executes raw GraphQL queries against an ENS subgraph.
type Client struct {
	client   *graphql.Client
	endpoint string
}

// New creates a subgraph client. A nil httpClient gets DefaultTimeout.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Client{
		client:   graphql.NewClient(endpoint, httpClient),
		endpoint: endpoint,
	}
}

// Endpoint returns the subgraph URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query runs query with variables and returns the response data payload.
func (c *Client) Query(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error) {
	data, err := c.client.ExecRaw(ctx, query, variables)
	if err != nil {
		return nil, fmt.Errorf("subgraph %s: %w", c.endpoint, err)
	}
	return []byte(data), nil
}
