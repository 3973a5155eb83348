package http

import (
	"math/big"
	"net"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/talentlayer/talentlayer-client/internal/client"
)

var errBadInput = errors.New("bad input")

func badInput(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), errBadInput)
}

func isLoopbackRequest(r *http.Request) bool {
	ra := r.RemoteAddr

	h, _, err := net.SplitHostPort(ra)
	if err != nil {
		ip := net.ParseIP(ra)
		return ip != nil && ip.IsLoopback()
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}

func isSafeLocalHost(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadInput):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrWalletNotInitialised):
		return http.StatusPreconditionFailed
	case errors.Is(err, client.ErrInvalidContract), errors.Is(err, client.ErrUnknownFunction):
		return http.StatusNotFound
	case errors.Is(err, client.ErrNoTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// parseBigInt accepts decimal or 0x-prefixed hex. Empty input yields nil.
func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, badInput("invalid integer %q", s)
	}
	return v, nil
}
