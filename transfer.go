package snsd

import (
	"context"

	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// Transfer builds either phase of a domain transfer. TargetAccount selects
// the begin phase, BalanceID the end phase; both or neither is ambiguous
// and rejected before anything is resolved. Transfers are sequenced and
// fee-paid by the caller's own account.
func (c *Contract) Transfer(ctx context.Context, req schema.TransferRequest) (*txn.Transaction, error) {
	if (req.TargetAccount != "") == (req.BalanceID != "") {
		return nil, schema.ErrAmbiguousTransferTarget
	}
	if !IsValidDomain(req.Domain, true) {
		return nil, schema.ErrInvalidDomain
	}

	existing, err := c.res.LookupDomain(ctx, req.Domain)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, schema.ErrDomainNotFound
	}

	user, err := c.cli.LoadAccount(ctx, req.UserAccount)
	if err != nil {
		return nil, err
	}
	seq, err := user.SequenceNumber()
	if err != nil {
		return nil, err
	}
	b := txn.NewBuilder(req.UserAccount, seq, txn.BaseFee, c.cfg.NetworkPassphrase)

	if req.TargetAccount != "" {
		if err := c.buildTransferBegin(ctx, b, req, existing); err != nil {
			return nil, err
		}
	} else {
		buildTransferEnd(b, req, existing)
	}
	return b.Build()
}

// buildTransferBegin moves the domain token into an escrow claimable by
// the target, and by the current owner as a cancellation path when the two
// differ.
func (c *Contract) buildTransferBegin(ctx context.Context, b *txn.Builder, req schema.TransferRequest, existing *schema.DomainRecord) error {
	owner, err := c.res.LookupDomainOwner(ctx, existing)
	if err != nil {
		return err
	}
	if existing.IsSubdomain {
		// Subdomain identities are never independent signers; moving one
		// is delegated authority of the parent owner, not a token holding.
		parentOwner, err := c.res.LookupParentOwner(ctx, existing)
		if err != nil {
			return err
		}
		if parentOwner == nil || parentOwner.AccountID != req.UserAccount {
			return schema.ErrNotParentOwner
		}
	} else if owner == nil || owner.AccountID != req.UserAccount {
		return schema.ErrNotOwner
	}
	if owner == nil {
		// Token already sits in an escrow; there is nothing to fund a
		// second one from.
		return schema.ErrDomainInTransfer
	}

	asset := existing.Asset
	domainAccount := existing.Issuer()
	ownerAccount := owner.AccountID

	claimants := []txn.Claimant{txn.UnconditionalClaimant(req.TargetAccount)}
	if ownerAccount != req.TargetAccount {
		claimants = append(claimants, txn.UnconditionalClaimant(ownerAccount))
	}

	if req.UserAccount == ownerAccount {
		// The owner is a signer of this envelope: authorize its line, fund
		// the escrow from its holding, then drop the trustline entirely —
		// ownership is fully relinquished into escrow.
		b.AddOperation(txn.SetTrustLineFlags(domainAccount, ownerAccount, asset, true)).
			AddOperation(txn.CreateClaimableBalance(ownerAccount, claimants, asset, schema.Stroop)).
			AddOperation(txn.ChangeTrust(ownerAccount, asset, "0"))
	} else {
		// The nominal holder has no signing relationship with the issuer,
		// so the stroop rotates through the registrar: clawback, mint to a
		// temporary registrar trustline, escrow from there, drop the line.
		registrar := c.cfg.RegistrarAccount
		b.AddOperation(txn.Clawback(domainAccount, ownerAccount, asset, schema.Stroop)).
			AddOperation(txn.ChangeTrust(registrar, asset, schema.Stroop)).
			AddOperation(txn.SetTrustLineFlags(domainAccount, registrar, asset, true)).
			AddOperation(txn.Payment(domainAccount, registrar, asset, schema.Stroop)).
			AddOperation(txn.CreateClaimableBalance(registrar, claimants, asset, schema.Stroop)).
			AddOperation(txn.ChangeTrust(registrar, asset, "0"))
	}

	b.AddMemo(schema.MemoTransferBegin).SetTimeout(0)
	return nil
}

// buildTransferEnd claims the escrow into the caller's re-established
// trustline and locks the line again, restoring the one-owner pattern.
func buildTransferEnd(b *txn.Builder, req schema.TransferRequest, existing *schema.DomainRecord) {
	asset := existing.Asset
	domainAccount := existing.Issuer()

	b.AddOperation(txn.ChangeTrust(req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, true)).
		AddOperation(txn.ClaimClaimableBalance(req.UserAccount, req.BalanceID)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, false)).
		AddMemo(schema.MemoTransferEnd).
		SetTimeout(0)
}
