package http

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	defaultPageSize = 10
	maxPageSize     = 100
	maxPages        = 20

	HTTPErrorForbiddenText        = "forbidden"
	HTTPErrorForbiddenHostText    = "forbidden host"
	HTTPErrorSubgraphDisabledText = "subgraph not configured"
)
