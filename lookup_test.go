package snsd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

func TestLookupDomainDrainsAllPages(t *testing.T) {
	f := newFakeLedger()
	// page size 2, match sits on the second page
	f.addDomainAccount(domainAccount("GDOMA", "aaa.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GDOMB", "bbb.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GDOMC", "ccc.stellar", testNow+100, ""))
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "ccc.stellar")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "ccc.stellar", record.Domain)
	assert.Equal(t, schema.DomainAssetCode, record.Asset.Code)
	assert.Equal(t, "GDOMC", record.Asset.Issuer)
	assert.Equal(t, testNow+100, record.Expires)
	assert.False(t, record.IsSubdomain)

	record, err = res.LookupDomain(context.Background(), "zzz.stellar")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestLookupDomainSubdomainRecord(t *testing.T) {
	f := newFakeLedger()
	f.addDomainAccount(domainAccount("GDOMA", "alice.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GSUBA", "shop.alice.stellar", 0, "GDOMA"))
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "shop.alice.stellar")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.IsSubdomain)
	assert.Equal(t, "GDOMA", record.ParentIssuer)
	assert.EqualValues(t, 0, record.Expires)
}

func TestLookupDomainOwner(t *testing.T) {
	asset := txn.NewAsset(schema.DomainAssetCode, "GDOMA")

	f := newFakeLedger()
	f.addDomainAccount(domainAccount("GDOMA", "alice.stellar", testNow+100, ""))
	// a lapsed trustline with zero balance must be skipped
	f.addHolder(asset, holderAccount("GOLD", asset, "0.0000000"))
	f.addHolder(asset, holderAccount("GNEW", asset, "0.0000001"))
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "alice.stellar")
	require.NoError(t, err)

	owner, err := res.LookupDomainOwner(context.Background(), record)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "GNEW", owner.AccountID)
}

func TestLookupDomainOwnerNobodyHolds(t *testing.T) {
	f := newFakeLedger()
	f.addDomainAccount(domainAccount("GDOMA", "alice.stellar", testNow+100, ""))
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "alice.stellar")
	require.NoError(t, err)

	owner, err := res.LookupDomainOwner(context.Background(), record)
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestLookupSubdomains(t *testing.T) {
	f := newFakeLedger()
	f.addDomainAccount(domainAccount("GDOMA", "alice.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GDOMB", "bob.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GSUBA", "shop.alice.stellar", 0, "GDOMA"))
	f.addDomainAccount(domainAccount("GSUBB", "blog.alice.stellar", 0, "GDOMA"))
	f.addDomainAccount(domainAccount("GSUBC", "shop.bob.stellar", 0, "GDOMB"))
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "alice.stellar")
	require.NoError(t, err)

	subdomains, err := res.LookupSubdomains(context.Background(), record)
	require.NoError(t, err)
	require.Len(t, subdomains, 2)
	assert.Equal(t, "shop.alice.stellar", subdomains[0].Domain)
	assert.Equal(t, "blog.alice.stellar", subdomains[1].Domain)
	assert.True(t, subdomains[0].IsSubdomain)
	assert.Equal(t, "GDOMA", subdomains[0].ParentIssuer)
}

func TestLookupQueryFailureIsNotAbsence(t *testing.T) {
	f := newFakeLedger()
	f.failAll = true
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	record, err := res.LookupDomain(context.Background(), "alice.stellar")
	assert.Error(t, err)
	assert.Nil(t, record)
}

func TestLookupFull(t *testing.T) {
	asset := txn.NewAsset(schema.DomainAssetCode, "GDOMA")

	f := newFakeLedger()
	f.addDomainAccount(domainAccount("GDOMA", "alice.stellar", testNow+100, ""))
	f.addDomainAccount(domainAccount("GSUBA", "shop.alice.stellar", 0, "GDOMA"))
	owner := holderAccount("GOWNER", asset, "0.0000001")
	owner.Data[schema.DataKeyProfileGithub] = b64("octocat")
	f.addHolder(asset, owner)
	f.claimables[asset.String()] = []horizon.ClaimableBalance{
		{ID: "balance-1", Asset: asset.String(), Amount: schema.Stroop},
	}
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	result, err := res.Lookup(context.Background(), "alice.stellar")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.True(t, result.IsRegistered)
	assert.False(t, result.IsSubdomain)
	require.NotNil(t, result.Asset)
	assert.Equal(t, "GDOMA", result.Asset.Issuer)
	assert.Equal(t, testNow+100, result.Expires)
	assert.True(t, result.InTransfer)
	assert.Equal(t, "balance-1", result.BalanceID)
	require.Len(t, result.Subdomains, 1)
	require.NotNil(t, result.Owner)
	assert.Equal(t, "GOWNER", result.Owner.Account)
	require.NotNil(t, result.Owner.Data.Github)
	assert.Equal(t, "octocat", *result.Owner.Data.Github)
	assert.Nil(t, result.Owner.Data.Discord)
}

func TestLookupFullUnregistered(t *testing.T) {
	f := newFakeLedger()
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	result, err := res.Lookup(context.Background(), "alice.stellar")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.False(t, result.IsRegistered)
	assert.Nil(t, result.Owner)
}

func TestLookupFullInvalid(t *testing.T) {
	f := newFakeLedger()
	srv := f.server()
	defer srv.Close()

	res := NewResolver(horizon.New(srv.URL), testRegistrar)

	result, err := res.Lookup(context.Background(), "a.b.c.d")
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.False(t, result.IsRegistered)
}
