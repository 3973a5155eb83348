// Package subgraph queries the TalentLayer subgraph, the indexed read model of
// on-chain protocol state.
package subgraph

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/machinebox/graphql"
)

type Client struct {
	url string
	gql *graphql.Client
}

type options struct {
	httpClient *http.Client
}

type Option func(*options)

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func New(url string, opts ...Option) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("subgraph: url is empty")
	}

	o := options{httpClient: &http.Client{Timeout: 15 * time.Second}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		url: url,
		gql: graphql.NewClient(url, graphql.WithHTTPClient(o.httpClient)),
	}, nil
}

func (c *Client) URL() string { return c.url }

// Query runs a raw GraphQL query and decodes the data field into out.
func (c *Client) Query(ctx context.Context, query string, vars map[string]any, out any) error {
	req := graphql.NewRequest(query)
	for k, v := range vars {
		req.Var(k, v)
	}

	if err := c.gql.Run(ctx, req, out); err != nil {
		return errors.Wrap(err, "subgraph query")
	}
	return nil
}
