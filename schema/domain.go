package schema

import (
	"github.com/stellarns/snsd/txn"
)

const (
	// DomainAssetCode tags every domain token; uniqueness comes from the
	// issuer account, never the code.
	DomainAssetCode = "Domain"

	// Stroop is the minimal token unit. Exactly one stroop of a domain
	// token is ever minted per domain.
	Stroop = "0.0000001"

	// Account data entry names on a domain issuer account.
	DataKeyDomain  = "domain"
	DataKeyExpires = "expires"

	// Profile data entry names on an owner account.
	DataKeyProfileAccount = "config.sns.account"
	DataKeyProfileDiscord = "config.sns.discord"
	DataKeyProfileGithub  = "config.sns.github"
	DataKeyProfileText    = "config.sns.text"

	// Memo tags identifying each envelope kind.
	MemoDomainCreate  = "domain_create"
	MemoDomainRenew   = "domain_renew"
	MemoDomainReissue = "domain_register"
	MemoSubCreate     = "subdomain_create"
	MemoTransferBegin = "domain_transfer_begin"
	MemoTransferEnd   = "domain_transfer_end"
	MemoProfileModify = "profile_modify"

	// Starting balances for new issuer accounts: base reserve plus data
	// entries plus the registrar signer.
	DomainStartingBalance    = "2.5"
	SubdomainStartingBalance = "2"
)

// DomainRecord is the resolved on-ledger identity of a registered domain.
// It is derived from ledger account metadata on every resolution, never
// stored.
type DomainRecord struct {
	Domain       string    `json:"domain"`
	Asset        txn.Asset `json:"asset"`
	IsSubdomain  bool      `json:"isSubdomain"`
	ParentIssuer string    `json:"parentIssuer,omitempty"`
	Expires      int64     `json:"expires,omitempty"`
}

// Issuer is the account that is the domain's identity.
func (r *DomainRecord) Issuer() string {
	return r.Asset.Issuer
}

// Expired reports whether the record's expiry epoch has passed. Records
// without an expires entry (subdomains) never expire on their own.
func (r *DomainRecord) Expired(nowEpoch int64) bool {
	return r.Expires != 0 && r.Expires <= nowEpoch
}

// ProfileData is the owner-published contact metadata, each field stored
// as an independent data entry on the owner account.
type ProfileData struct {
	Account *string `json:"account,omitempty"`
	Discord *string `json:"discord,omitempty"`
	Github  *string `json:"github,omitempty"`
	Text    *string `json:"text,omitempty"`
}

type OwnerInfo struct {
	Account string      `json:"account"`
	Data    ProfileData `json:"data"`
}

// LookupResult is the consumer-facing resolution of one domain name.
type LookupResult struct {
	Domain       string         `json:"domain"`
	IsValid      bool           `json:"isValid"`
	IsRegistered bool           `json:"isRegistered"`
	IsSubdomain  bool           `json:"isSubdomain,omitempty"`
	Asset        *txn.Asset     `json:"asset,omitempty"`
	Expires      int64          `json:"expires,omitempty"`
	InTransfer   bool           `json:"inTransfer,omitempty"`
	BalanceID    string         `json:"balanceId,omitempty"`
	Subdomains   []DomainRecord `json:"subdomains,omitempty"`
	Owner        *OwnerInfo     `json:"owner,omitempty"`
}
