package horizon

import (
	"context"
	"net/url"
)

const defaultPageLimit = 200

// AccountPager walks a cursor-paginated account stream lazily. A page with
// zero records terminates the stream; absence of a match therefore
// requires draining the pager, not just reading the first page. The
// caller's context bounds every page fetch, so unbounded account sets stay
// cancellable.
type AccountPager struct {
	c      *Client
	path   string
	query  url.Values
	cursor string
	done   bool
}

// Next returns the next page of records. An empty page with a nil error
// means the stream is exhausted; every later call returns the same.
func (p *AccountPager) Next(ctx context.Context) ([]Account, error) {
	if p.done {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := p.c.cli.Get()
	req.AddPath(p.path)
	for key := range p.query {
		req.SetQuery(key, p.query.Get(key))
	}
	if p.cursor != "" {
		req.SetQuery("cursor", p.cursor)
	}
	resp, err := req.Send()
	if err != nil {
		return nil, err
	}
	defer resp.Close()
	if !resp.Ok {
		return nil, parseError(resp.StatusCode, resp.Bytes())
	}

	var pg page[Account]
	if err := resp.JSON(&pg); err != nil {
		return nil, err
	}
	records := pg.Embedded.Records
	if len(records) == 0 {
		p.done = true
		return nil, nil
	}
	p.cursor = records[len(records)-1].PagingToken
	return records, nil
}

// Each drains the pager, invoking fn per record until fn returns false or
// the stream ends.
func (p *AccountPager) Each(ctx context.Context, fn func(Account) bool) error {
	for {
		records, err := p.Next(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			if !fn(records[i]) {
				return nil
			}
		}
	}
}
