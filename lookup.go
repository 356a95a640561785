package snsd

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// Resolver recomputes domain state from the ledger on every call. Nothing
// is remembered between calls: a builder must act on state resolved within
// its own invocation, otherwise a transfer could be authorized from stale
// ownership data.
type Resolver struct {
	cli       *horizon.Client
	registrar string
}

func NewResolver(cli *horizon.Client, registrar string) *Resolver {
	return &Resolver{cli: cli, registrar: registrar}
}

// LookupDomain resolves a domain name to its on-ledger identity, or nil
// when it was never registered. It scans the registrar's co-signed
// accounts for a byte-exact match of the encoded domain entry and drains
// every page before concluding absence. A query failure propagates as an
// error, never as nil.
func (r *Resolver) LookupDomain(ctx context.Context, domain string) (*schema.DomainRecord, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(domain))

	var record *schema.DomainRecord
	pager := r.cli.AccountsForSigner(r.registrar)
	err := pager.Each(ctx, func(acc horizon.Account) bool {
		raw, ok := acc.DataRaw(schema.DataKeyDomain)
		if !ok || raw != encoded {
			return true
		}
		record = &schema.DomainRecord{
			Domain:       domain,
			Asset:        txn.NewAsset(schema.DomainAssetCode, acc.AccountID),
			IsSubdomain:  acc.ParentIssuer() != "",
			ParentIssuer: acc.ParentIssuer(),
			Expires:      decodeExpires(&acc),
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// LookupDomainOwner resolves the account currently holding a positive
// balance of the domain token. nil means the token is transiently held by
// nobody (mid-transfer), which is distinct from a query failure.
func (r *Resolver) LookupDomainOwner(ctx context.Context, record *schema.DomainRecord) (*horizon.Account, error) {
	return r.lookupAssetHolder(ctx, record.Asset)
}

// LookupParentOwner resolves the owner of a subdomain's parent token; only
// the parent owner may act for a subdomain.
func (r *Resolver) LookupParentOwner(ctx context.Context, record *schema.DomainRecord) (*horizon.Account, error) {
	if !record.IsSubdomain {
		return nil, nil
	}
	parentAsset := txn.NewAsset(schema.DomainAssetCode, record.ParentIssuer)
	return r.lookupAssetHolder(ctx, parentAsset)
}

// LookupSubdomains collects every registrar-cosigned account whose parent
// link points at the record's issuer.
func (r *Resolver) LookupSubdomains(ctx context.Context, record *schema.DomainRecord) ([]schema.DomainRecord, error) {
	subdomains := make([]schema.DomainRecord, 0)
	pager := r.cli.AccountsForSigner(r.registrar)
	err := pager.Each(ctx, func(acc horizon.Account) bool {
		if acc.ParentIssuer() != record.Issuer() {
			return true
		}
		name, ok := acc.DataValue(schema.DataKeyDomain)
		if !ok {
			return true
		}
		subdomains = append(subdomains, schema.DomainRecord{
			Domain:       name,
			Asset:        txn.NewAsset(schema.DomainAssetCode, acc.AccountID),
			IsSubdomain:  true,
			ParentIssuer: acc.ParentIssuer(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return subdomains, nil
}

// LookupDomainTransfer returns the pending escrow holding the domain
// token, if any. At most one is expected per domain.
func (r *Resolver) LookupDomainTransfer(ctx context.Context, record *schema.DomainRecord) (*horizon.ClaimableBalance, error) {
	balances, err := r.cli.ClaimableBalances(ctx, record.Asset, 1)
	if err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, nil
	}
	b := balances[0]
	return &b, nil
}

func (r *Resolver) lookupAssetHolder(ctx context.Context, asset txn.Asset) (*horizon.Account, error) {
	var owner *horizon.Account
	pager := r.cli.AccountsForAsset(asset)
	err := pager.Each(ctx, func(acc horizon.Account) bool {
		if acc.HoldsPositive(asset) {
			a := acc
			owner = &a
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// Lookup resolves the consumer-facing view of one domain name: syntax
// validity, registration, ownership with profile data, children and any
// pending transfer. The three derived queries are independent and run
// concurrently; nothing resolved here is reused outside this call.
func (r *Resolver) Lookup(ctx context.Context, domain string) (*schema.LookupResult, error) {
	res := &schema.LookupResult{Domain: domain}
	if !IsValidDomain(domain, true) {
		return res, nil
	}
	res.IsValid = true

	record, err := r.LookupDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return res, nil
	}
	res.IsRegistered = true
	res.IsSubdomain = record.IsSubdomain
	res.Expires = record.Expires
	asset := record.Asset
	res.Asset = &asset

	var (
		owner      *horizon.Account
		subdomains []schema.DomainRecord
		pending    *horizon.ClaimableBalance

		ownerErr, subErr, pendErr error
	)

	pool, err := ants.NewPool(3)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	wg := sync.WaitGroup{}
	wg.Add(3)
	pool.Submit(func() {
		defer wg.Done()
		owner, ownerErr = r.LookupDomainOwner(ctx, record)
	})
	pool.Submit(func() {
		defer wg.Done()
		subdomains, subErr = r.LookupSubdomains(ctx, record)
	})
	pool.Submit(func() {
		defer wg.Done()
		pending, pendErr = r.LookupDomainTransfer(ctx, record)
	})
	wg.Wait()

	for _, e := range []error{ownerErr, subErr, pendErr} {
		if e != nil {
			return nil, e
		}
	}

	res.Subdomains = subdomains
	if pending != nil {
		res.InTransfer = true
		res.BalanceID = pending.ID
	}
	if owner != nil {
		res.Owner = &schema.OwnerInfo{
			Account: owner.AccountID,
			Data: schema.ProfileData{
				Account: profileValue(owner, schema.DataKeyProfileAccount),
				Discord: profileValue(owner, schema.DataKeyProfileDiscord),
				Github:  profileValue(owner, schema.DataKeyProfileGithub),
				Text:    profileValue(owner, schema.DataKeyProfileText),
			},
		}
	}
	return res, nil
}

func profileValue(acc *horizon.Account, name string) *string {
	v, ok := acc.DataValue(name)
	if !ok {
		return nil
	}
	return &v
}

// decodeExpires parses the expires data entry as an integer epoch. The
// stored form is a decimal string; decimal parsing keeps values beyond
// float precision intact.
func decodeExpires(acc *horizon.Account) int64 {
	value, ok := acc.DataValue(schema.DataKeyExpires)
	if !ok {
		return 0
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	return d.IntPart()
}
