package snsd

import (
	"context"
	"strconv"

	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// registerState classifies an incoming registration against the resolved
// record. The three-way branching is explicit so no request can fall
// through to the wrong envelope shape.
type registerState int

const (
	stateUnregistered registerState = iota
	stateOwnedByRequester
	stateOwnedUnexpired
	stateOwnedExpired
	stateExpiredUnowned
)

func classifyRegistration(existing *schema.DomainRecord, owner *horizon.Account, requester string, nowEpoch int64) registerState {
	switch {
	case existing == nil:
		return stateUnregistered
	case owner != nil && owner.AccountID == requester:
		return stateOwnedByRequester
	case !existing.Expired(nowEpoch):
		return stateOwnedUnexpired
	case owner == nil:
		// Expired but the token sits in escrow: nobody to claw it back
		// from, so a reassignment envelope cannot be built.
		return stateExpiredUnowned
	default:
		return stateOwnedExpired
	}
}

// Register builds the envelope for registering, renewing or reclaiming a
// top-level domain. Fresh registrations return an envelope already signed
// by the one-time issuer key; the issuer's master weight is zero after
// setup, so that signature can never be produced again.
func (c *Contract) Register(ctx context.Context, req schema.RegisterRequest) (*txn.Transaction, error) {
	if !IsValidDomain(req.Domain, false) {
		return nil, schema.ErrInvalidDomain
	}

	existing, err := c.res.LookupDomain(ctx, req.Domain)
	if err != nil {
		return nil, err
	}
	var owner *horizon.Account
	if existing != nil {
		owner, err = c.res.LookupDomainOwner(ctx, existing)
		if err != nil {
			return nil, err
		}
	}

	nowEpoch := c.now()
	expires := strconv.FormatInt(nowEpoch+c.cfg.DomainExpiration, 10)

	seq, err := c.registrarSequence(ctx)
	if err != nil {
		return nil, err
	}
	// Zero fee: the submitter wraps the envelope in a fee bump and pays.
	b := txn.NewBuilder(c.cfg.RegistrarAccount, seq, 0, c.cfg.NetworkPassphrase)

	switch classifyRegistration(existing, owner, req.UserAccount, nowEpoch) {
	case stateUnregistered:
		return c.buildFreshRegistration(b, req, expires)

	case stateOwnedByRequester:
		b.AddOperation(txn.ManageData(existing.Issuer(), schema.DataKeyExpires, &expires)).
			AddMemo(schema.MemoDomainRenew).
			SetTimeout(0)
		return b.Build()

	case stateOwnedExpired:
		return c.buildExpiredReassignment(b, req, existing, owner.AccountID, expires)

	case stateExpiredUnowned:
		return nil, schema.ErrDomainInTransfer

	default:
		return nil, schema.ErrDomainLocked
	}
}

// buildFreshRegistration mints a new issuer account as the domain's
// identity and establishes ownership with the authorize, pay, deauthorize
// sequence: exactly one stroop reaches exactly one trustline and the
// trustline is locked immediately after, so the token can never move
// freely.
func (c *Contract) buildFreshRegistration(b *txn.Builder, req schema.RegisterRequest, expires string) (*txn.Transaction, error) {
	issuer, err := txn.Random()
	if err != nil {
		return nil, err
	}
	domainAccount := issuer.Address()
	asset := txn.NewAsset(schema.DomainAssetCode, domainAccount)
	domain := req.Domain

	b.AddOperation(txn.CreateAccount(req.UserAccount, domainAccount, schema.DomainStartingBalance)).
		AddOperation(txn.SetOptions(
			domainAccount,
			txn.AuthRequiredFlag|txn.AuthRevocableFlag|txn.AuthImmutableFlag|txn.AuthClawbackEnabledFlag,
			&txn.Signer{Key: c.cfg.RegistrarAccount, Weight: 1},
			0, // master weight zero: only the registrar can act as issuer from here on
			"",
		)).
		AddOperation(txn.ManageData(domainAccount, schema.DataKeyDomain, &domain)).
		AddOperation(txn.ManageData(domainAccount, schema.DataKeyExpires, &expires)).
		AddOperation(txn.ChangeTrust(req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, true)).
		AddOperation(txn.Payment(domainAccount, req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, false)).
		AddMemo(schema.MemoDomainCreate).
		SetTimeout(0)

	tx, err := b.Build()
	if err != nil {
		return nil, err
	}
	// The issuer key signs exactly once, at creation.
	tx.Sign(issuer)
	return tx, nil
}

// buildExpiredReassignment rotates ownership of an expired domain to the
// requester. The issuer identity persists; the stroop is clawed back from
// the lapsed owner and re-minted to the new one atomically.
func (c *Contract) buildExpiredReassignment(b *txn.Builder, req schema.RegisterRequest, existing *schema.DomainRecord, prevOwner, expires string) (*txn.Transaction, error) {
	domainAccount := existing.Issuer()
	asset := existing.Asset

	b.AddOperation(txn.ManageData(domainAccount, schema.DataKeyExpires, &expires)).
		AddOperation(txn.Clawback(domainAccount, prevOwner, asset, schema.Stroop)).
		AddOperation(txn.ChangeTrust(req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, true)).
		AddOperation(txn.Payment(domainAccount, req.UserAccount, asset, schema.Stroop)).
		AddOperation(txn.SetTrustLineFlags(domainAccount, req.UserAccount, asset, false)).
		AddMemo(schema.MemoDomainReissue).
		SetTimeout(0)

	return b.Build()
}
