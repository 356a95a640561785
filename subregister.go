package snsd

import (
	"context"

	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// Subregister builds the envelope creating a subdomain under a domain the
// requester owns. The subdomain gets its own one-time issuer account,
// linked to the parent issuer; it carries no expires entry because its
// lifecycle follows the parent's.
func (c *Contract) Subregister(ctx context.Context, req schema.SubregisterRequest) (*txn.Transaction, error) {
	if !IsValidDomain(req.Domain, false) {
		return nil, schema.ErrInvalidDomain
	}
	if !IsValidLabel(req.Label) {
		return nil, schema.ErrInvalidLabel
	}

	existing, err := c.res.LookupDomain(ctx, req.Domain)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, schema.ErrDomainNotFound
	}
	parentIssuer := existing.Issuer()

	owner, err := c.res.LookupDomainOwner(ctx, existing)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.AccountID != req.UserAccount {
		return nil, schema.ErrNotOwner
	}

	subdomain := req.Label + "." + req.Domain
	conflict, err := c.res.LookupDomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, schema.ErrSubdomainExists
	}

	issuer, err := txn.Random()
	if err != nil {
		return nil, err
	}
	subdomainAccount := issuer.Address()
	asset := txn.NewAsset(schema.DomainAssetCode, subdomainAccount)

	seq, err := c.registrarSequence(ctx)
	if err != nil {
		return nil, err
	}
	b := txn.NewBuilder(c.cfg.RegistrarAccount, seq, 0, c.cfg.NetworkPassphrase)

	b.AddOperation(txn.CreateAccount(req.UserAccount, subdomainAccount, schema.SubdomainStartingBalance)).
		AddOperation(txn.SetOptions(
			subdomainAccount,
			txn.AuthRequiredFlag|txn.AuthRevocableFlag|txn.AuthImmutableFlag|txn.AuthClawbackEnabledFlag,
			&txn.Signer{Key: c.cfg.RegistrarAccount, Weight: 1},
			0,
			parentIssuer, // parent link
		)).
		AddOperation(txn.ManageData(subdomainAccount, schema.DataKeyDomain, &subdomain)).
		AddOperation(txn.ChangeTrust(req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(subdomainAccount, req.UserAccount, asset, true)).
		AddOperation(txn.Payment(subdomainAccount, req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(subdomainAccount, req.UserAccount, asset, false)).
		AddMemo(schema.MemoSubCreate).
		SetTimeout(0)

	tx, err := b.Build()
	if err != nil {
		return nil, err
	}
	tx.Sign(issuer)
	return tx, nil
}
