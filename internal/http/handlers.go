package http

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/talentlayer/talentlayer-client/internal/chains"
	"github.com/talentlayer/talentlayer-client/internal/client"
	"github.com/talentlayer/talentlayer-client/internal/paging"
	"github.com/talentlayer/talentlayer-client/internal/users"
	"github.com/talentlayer/talentlayer-client/internal/utils"
)

// ChainClient is the part of *client.Client the API serves.
type ChainClient interface {
	Network() string
	Chain() chains.ResolvedChain
	Source() client.AccountSource
	Address(ctx context.Context) (common.Address, error)
	Balance(ctx context.Context) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Method(contractName, functionName string) (abi.Method, error)
	ReadContract(ctx context.Context, contractName, functionName string, args ...any) ([]any, error)
	WriteContract(ctx context.Context, contractName, functionName string, args []any, value *big.Int) (common.Hash, error)
	UpdateProfileData(ctx context.Context, userID, cid string) (common.Hash, error)
}

var _ ChainClient = (*client.Client)(nil)

type Handler struct {
	chain    ChainClient
	users    users.Source
	pageSize int
}

// NewHandler builds the API handlers. src may be nil when no subgraph is
// configured; /api/users then answers 503.
func NewHandler(chain ChainClient, src users.Source, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Handler{chain: chain, users: src, pageSize: pageSize}
}

// -------- DTOs for local client API --------

type accountRes struct {
	Network    string `json:"network"`
	ChainID    string `json:"chainId"`
	RPC        string `json:"rpc"`
	Source     string `json:"source"`
	Address    string `json:"address,omitempty"`
	BalanceWei string `json:"balanceWei,omitempty"`
	Balance    string `json:"balance,omitempty"`
	ReadOnly   bool   `json:"readOnly"`
}

type usersRes struct {
	Items    any    `json:"items"`
	Offset   int    `json:"offset"`
	PageSize int    `json:"pageSize"`
	Search   string `json:"search,omitempty"`
	HasMore  bool   `json:"hasMore"`
}

type callReq struct {
	Function string            `json:"function" binding:"required"`
	Args     []json.RawMessage `json:"args"`
	Value    string            `json:"value,omitempty"`
}

type readRes struct {
	Outputs []any `json:"outputs"`
}

type txRes struct {
	TxHash string `json:"txHash"`
}

type updateProfileReq struct {
	CID string `json:"cid" binding:"required"`
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/account
func (h *Handler) Account(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.chain.ChainID(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	res := accountRes{
		Network: h.chain.Network(),
		ChainID: id.String(),
		RPC:     h.chain.Chain().RPCName,
		Source:  string(h.chain.Source()),
	}

	addr, err := h.chain.Address(ctx)
	switch {
	case errors.Is(err, client.ErrWalletNotInitialised):
		res.ReadOnly = true
	case err != nil:
		writeError(c, err)
		return
	default:
		res.Address = addr.Hex()
		if wei, err := h.chain.Balance(ctx); err != nil {
			log.Warn("balance lookup failed", "address", res.Address, "error", err)
		} else {
			res.BalanceWei = wei.String()
			res.Balance = utils.FormatUnits(wei, utils.NativeDecimals, 6)
		}
	}

	c.JSON(http.StatusOK, res)
}

// GET /api/users?search=&pageSize=&pages=
func (h *Handler) Users(c *gin.Context) {
	if h.users == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": HTTPErrorSubgraphDisabledText})
		return
	}

	pageSize, err := intQuery(c, "pageSize", h.pageSize, 0, maxPageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	pages, err := intQuery(c, "pages", 1, 1, maxPages)
	if err != nil {
		writeError(c, err)
		return
	}

	s := users.Collect(c.Request.Context(), h.users, users.Options{
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}, pages)
	if s.Status == paging.StatusError {
		writeError(c, s.Err)
		return
	}

	c.JSON(http.StatusOK, usersRes{
		Items:    s.Items,
		Offset:   s.Offset,
		PageSize: s.PageSize,
		Search:   s.Search,
		HasMore:  s.HasMore,
	})
}

// POST /api/contracts/:name/read
func (h *Handler) ReadContract(c *gin.Context) {
	name, req, args, ok := h.bindCall(c)
	if !ok {
		return
	}

	out, err := h.chain.ReadContract(c.Request.Context(), name, req.Function, args...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, readRes{Outputs: formatOutputs(out)})
}

// POST /api/contracts/:name/write
func (h *Handler) WriteContract(c *gin.Context) {
	name, req, args, ok := h.bindCall(c)
	if !ok {
		return
	}

	value, err := parseBigInt(req.Value)
	if err != nil {
		writeError(c, err)
		return
	}

	hash, err := h.chain.WriteContract(c.Request.Context(), name, req.Function, args, value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, txRes{TxHash: hash.Hex()})
}

// POST /api/profiles/:id
func (h *Handler) UpdateProfile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if n, ok := new(big.Int).SetString(id, 10); !ok || n.Sign() < 0 {
		writeError(c, badInput("invalid profile id %q", id))
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := h.chain.UpdateProfileData(c.Request.Context(), id, req.CID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, txRes{TxHash: hash.Hex()})
}

// bindCall decodes a contract call body and coerces its arguments against the
// function's ABI inputs.
func (h *Handler) bindCall(c *gin.Context) (string, callReq, []any, bool) {
	name := c.Param("name")

	var req callReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", req, nil, false
	}

	m, err := h.chain.Method(name, req.Function)
	if err != nil {
		writeError(c, err)
		return "", req, nil, false
	}

	args, err := coerceArgs(m.Inputs, req.Args)
	if err != nil {
		writeError(c, err)
		return "", req, nil, false
	}
	return name, req, args, true
}

func intQuery(c *gin.Context, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, badInput("%s must be an integer in [%d, %d]", key, lo, hi)
	}
	return n, nil
}
