package projectx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"BarPulse/internal/domain/models"
	"BarPulse/internal/domain/repository"
	"BarPulse/pkg/config"
	xhttp "BarPulse/pkg/http"
	applogger "BarPulse/pkg/logger"
	"BarPulse/pkg/util"
)

const (
	endpointLogin        = "/api/Auth/loginKey"
	endpointBars         = "/api/History/retrieveBars"
	endpointContracts    = "/api/Contract/search"
	endpointContractByID = "/api/Contract/searchById"
	endpointTrades       = "/api/Trade/search"
	endpointAccounts     = "/api/Account/search"

	defaultBarLimit = 20000
)

// Client talks to the ProjectX-gateway futures API. It implements the
// domain BarSource, ContractResolver and TradeSource interfaces.
type Client struct {
	baseURL      string
	username     string
	apiKey       string
	retryMax     int
	retryBackoff time.Duration
	http         *xhttp.Client
	tokens       *TokenCache
	logger       *applogger.Logger
	metrics      repository.Metrics
}

// NewClient creates an upstream API client.
func NewClient(cfg *config.Config, logger *applogger.Logger, metrics repository.Metrics) *Client {
	retryMax := cfg.ProjectX.RetryMax
	if retryMax < 1 {
		retryMax = 1
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.ProjectX.BaseURL, "/"),
		username:     cfg.ProjectX.Username,
		apiKey:       cfg.ProjectX.APIKey,
		retryMax:     retryMax,
		retryBackoff: cfg.ProjectX.RetryBackoff,
		http:         xhttp.NewClient(xhttp.WithTimeout(cfg.ProjectX.RequestTimeout)),
		tokens:       NewTokenCache(cfg.ProjectX.TokenTTL),
		logger:       logger,
		metrics:      metrics,
	}
}

// FetchBars retrieves canonical bars for a contract and window. An empty
// window is a legitimate empty result, not an error.
func (c *Client) FetchBars(ctx context.Context, contractID string, start, end time.Time, interval string, live, includePartial bool) ([]models.Bar, error) {
	unit, number, err := repository.ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	req := retrieveBarsRequest{
		ContractID:        contractID,
		Live:              live,
		StartTime:         util.FormatISOZ(start),
		EndTime:           util.FormatISOZ(end),
		Unit:              unit,
		UnitNumber:        number,
		Limit:             defaultBarLimit,
		IncludePartialBar: includePartial,
	}

	var resp retrieveBarsResponse
	if err := c.post(ctx, endpointBars, req, &resp); err != nil {
		return nil, err
	}

	bars := toBars(resp.Bars)
	c.metrics.RecordBarsFetched(interval, len(bars))
	return bars, nil
}

// ResolveContract resolves a symbol or "CON."-prefixed contract code to the
// upstream contract ID. Search order follows the upstream conventions: the
// raw symbol, then the "F.US." and "CON.F.US." prefixed variants, each
// tried against the requested live flag first and its inverse second.
func (c *Client) ResolveContract(ctx context.Context, symbolOrID string, live bool) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(symbolOrID))
	if symbol == "" {
		return "", models.ErrContractNotFound
	}

	if strings.HasPrefix(symbol, "CON.") {
		if id, err := c.searchContractByID(ctx, symbol); err != nil {
			return "", err
		} else if id != "" {
			return id, nil
		}
		// Fall back to the root symbol part of CON.F.US.<ROOT>.<EXP>.
		if parts := strings.Split(symbol, "."); len(parts) >= 4 {
			symbol = parts[3]
		}
	}

	for _, text := range []string{symbol, "F.US." + symbol, "CON.F.US." + symbol} {
		for _, flag := range []bool{live, !live} {
			id, err := c.searchContracts(ctx, text, flag)
			if err != nil {
				return "", err
			}
			if id != "" {
				return id, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", models.ErrContractNotFound, symbolOrID)
}

func (c *Client) searchContracts(ctx context.Context, text string, live bool) (string, error) {
	req := contractSearchRequest{SearchText: text, Live: live, OnlyTradable: false, Limit: 50}

	var resp contractSearchResponse
	if err := c.post(ctx, endpointContracts, req, &resp); err != nil {
		return "", err
	}
	return pickFront(resp.Contracts), nil
}

func (c *Client) searchContractByID(ctx context.Context, code string) (string, error) {
	var resp contractByIDResponse
	if err := c.post(ctx, endpointContractByID, contractByIDRequest{ContractID: code}, &resp); err != nil {
		return "", err
	}
	if resp.Contract == nil {
		return "", nil
	}
	return resp.Contract.identifier(), nil
}

// pickFront prefers the front-month contract, then the active one, then the
// first hit.
func pickFront(contracts []contractDTO) string {
	for i := range contracts {
		if contracts[i].IsFront {
			return contracts[i].identifier()
		}
	}
	for i := range contracts {
		if contracts[i].ActiveContract {
			return contracts[i].identifier()
		}
	}
	if len(contracts) > 0 {
		return contracts[0].identifier()
	}
	return ""
}

// SearchTrades returns executions for an account within [start, end].
func (c *Client) SearchTrades(ctx context.Context, accountID int64, start, end time.Time) ([]models.Trade, error) {
	req := tradeSearchRequest{
		AccountID:      accountID,
		StartTimestamp: util.FormatISOZ(start),
	}
	if !end.IsZero() {
		req.EndTimestamp = util.FormatISOZ(end)
	}

	var resp tradeSearchResponse
	if err := c.post(ctx, endpointTrades, req, &resp); err != nil {
		return nil, err
	}

	trades := make([]models.Trade, 0, len(resp.Trades))
	for _, t := range resp.Trades {
		when, ok := util.ParseTime(t.CreationTime)
		if !ok {
			continue
		}
		trades = append(trades, models.Trade{
			ID:            t.ID,
			AccountID:     t.AccountID,
			ContractID:    t.ContractID,
			Time:          when.UTC(),
			Price:         t.Price,
			Size:          t.Size,
			Side:          t.Side,
			ProfitAndLoss: t.ProfitAndLoss,
			Fees:          t.Fees,
			OrderID:       t.OrderID,
		})
	}
	return trades, nil
}

// SearchAccounts lists the caller's upstream accounts.
func (c *Client) SearchAccounts(ctx context.Context, onlyActive bool) ([]models.Account, error) {
	var resp accountSearchResponse
	if err := c.post(ctx, endpointAccounts, accountSearchRequest{OnlyActiveAccounts: onlyActive}, &resp); err != nil {
		return nil, err
	}

	accounts := make([]models.Account, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		accounts = append(accounts, models.Account{
			ID:        a.ID,
			Name:      a.Name,
			Balance:   a.Balance,
			CanTrade:  a.CanTrade,
			Simulated: a.Simulated,
		})
	}
	return accounts, nil
}

// authToken returns a fresh session token, logging in when the cached one
// has expired.
func (c *Client) authToken(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(); ok {
		return token, nil
	}

	var resp loginResponse
	err := c.doPost(ctx, endpointLogin, loginRequest{UserName: c.username, APIKey: c.apiKey}, &resp, "")
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		c.metrics.RecordError("auth")
		return "", fmt.Errorf("%w: login returned no token: %s", models.ErrUpstreamUnavailable, resp.ErrorMessage)
	}

	c.tokens.Put(resp.Token)
	c.logger.Info("authenticated with upstream, token cached")
	return resp.Token, nil
}

// post sends an authenticated JSON POST to the upstream.
func (c *Client) post(ctx context.Context, endpoint string, body, dest interface{}) error {
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}
	return c.doPost(ctx, endpoint, body, dest, token)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, dest interface{}, token string) error {
	started := time.Now()

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "text/plain",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	operation := func() error {
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:  xhttp.MethodPost,
			URL:     c.baseURL + endpoint,
			Headers: headers,
			Body:    body,
		}, dest)
		if err == nil {
			return nil
		}

		// 4xx responses will not improve with retries.
		var statusErr *xhttp.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
			if statusErr.StatusCode == 401 {
				c.tokens.Invalidate()
			}
			return backoff.Permanent(err)
		}

		c.logger.Warn("upstream request failed, retrying",
			applogger.String("endpoint", endpoint),
			applogger.Error(err),
		)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.retryMax-1)), ctx)

	err := backoff.Retry(operation, policy)
	c.metrics.RecordLatency("upstream_post", time.Since(started).Seconds())
	if err != nil {
		c.metrics.RecordUpstreamRequest(endpoint, "error")
		c.metrics.RecordError("upstream")
		return fmt.Errorf("%w: POST %s: %v", models.ErrUpstreamUnavailable, endpoint, err)
	}

	c.metrics.RecordUpstreamRequest(endpoint, "ok")
	return nil
}
