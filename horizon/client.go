package horizon

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"

	"github.com/stellarns/snsd/txn"
)

// Error is a failed query-service response. It is always distinguishable
// from "no results": an empty result set is a successful response with
// zero records.
type Error struct {
	StatusCode  int
	Title       string
	Detail      string
	ResultCodes string
}

func (e *Error) Error() string {
	if e.ResultCodes != "" {
		return fmt.Sprintf("horizon: %d %s: %s", e.StatusCode, e.Title, e.ResultCodes)
	}
	return fmt.Sprintf("horizon: %d %s", e.StatusCode, e.Title)
}

// Client queries the ledger network over its HTTP API. Every call may
// block on network I/O; failures surface as errors, never as absent
// records.
type Client struct {
	cli *gentleman.Client
}

func New(horizonURL string) *Client {
	return &Client{
		cli: gentleman.New().URL(horizonURL),
	}
}

// AccountsForSigner streams accounts co-signed by the given account in
// ascending order.
func (c *Client) AccountsForSigner(signer string) *AccountPager {
	q := url.Values{}
	q.Set("signer", signer)
	q.Set("order", "asc")
	q.Set("limit", fmt.Sprintf("%d", defaultPageLimit))
	return &AccountPager{c: c, path: "/accounts", query: q}
}

// AccountsForAsset streams accounts holding a trustline to the given
// asset.
func (c *Client) AccountsForAsset(asset txn.Asset) *AccountPager {
	q := url.Values{}
	q.Set("asset", asset.String())
	q.Set("order", "asc")
	q.Set("limit", fmt.Sprintf("%d", defaultPageLimit))
	return &AccountPager{c: c, path: "/accounts", query: q}
}

// ClaimableBalances lists escrow objects holding the given asset.
func (c *Client) ClaimableBalances(ctx context.Context, asset txn.Asset, limit int) ([]ClaimableBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := c.cli.Get()
	req.AddPath("/claimable_balances")
	req.SetQuery("asset", asset.String())
	req.SetQuery("limit", fmt.Sprintf("%d", limit))
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, parseError(resp.StatusCode, resp.Bytes())
	}
	var pg page[ClaimableBalance]
	if err := resp.JSON(&pg); err != nil {
		return nil, err
	}
	return pg.Embedded.Records, nil
}

// LoadAccount fetches one account by id, including its current sequence
// number.
func (c *Client) LoadAccount(ctx context.Context, id string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := c.cli.Get()
	req.AddPath(fmt.Sprintf("/accounts/%s", id))
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, parseError(resp.StatusCode, resp.Bytes())
	}
	acc := &Account{}
	if err := resp.JSON(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// SubmitTransaction posts a signed envelope. Submission failures (sequence
// conflicts, unauthorized signers) come back verbatim in the error's
// result codes.
func (c *Client) SubmitTransaction(ctx context.Context, envelope string) (*TxSuccess, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := c.cli.Post()
	req.AddPath("/transactions")
	req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	req.BodyString("tx=" + url.QueryEscape(envelope))
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, parseError(resp.StatusCode, resp.Bytes())
	}
	res := &TxSuccess{}
	if err := resp.JSON(res); err != nil {
		return nil, err
	}
	return res, nil
}

func parseError(status int, body []byte) *Error {
	return &Error{
		StatusCode:  status,
		Title:       gjson.GetBytes(body, "title").String(),
		Detail:      gjson.GetBytes(body, "detail").String(),
		ResultCodes: gjson.GetBytes(body, "extras.result_codes").Raw,
	}
}
