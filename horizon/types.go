package horizon

import (
	"encoding/base64"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stellarns/snsd/txn"
)

// Account is a ledger account record as returned by the query service.
type Account struct {
	ID                   string            `json:"id"`
	AccountID            string            `json:"account_id"`
	Sequence             string            `json:"sequence"`
	InflationDestination string            `json:"inflation_destination"`
	Data                 map[string]string `json:"data"`
	Balances             []Balance         `json:"balances"`
	PagingToken          string            `json:"paging_token"`
}

// ParentIssuer returns the issuer account this account is linked to as a
// child, or empty when it is no subdomain. The link rides on the account's
// inflation-destination attribute; that attribute has no other use in this
// system, and this accessor is the only place aware of the reuse.
func (a *Account) ParentIssuer() string {
	return a.InflationDestination
}

// DataValue decodes the named data entry. Entries are stored base64
// encoded; an undecodable entry is treated as absent.
func (a *Account) DataValue(name string) (string, bool) {
	raw, ok := a.Data[name]
	if !ok {
		return "", false
	}
	by, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", false
	}
	return string(by), true
}

// DataRaw returns the named data entry still base64 encoded.
func (a *Account) DataRaw(name string) (string, bool) {
	raw, ok := a.Data[name]
	return raw, ok
}

func (a *Account) SequenceNumber() (int64, error) {
	return strconv.ParseInt(a.Sequence, 10, 64)
}

// HoldsPositive reports whether the account holds a strictly positive
// balance line of exactly the given asset.
func (a *Account) HoldsPositive(asset txn.Asset) bool {
	for _, b := range a.Balances {
		if b.AssetType != asset.Type() {
			continue
		}
		if b.AssetCode != asset.Code || b.AssetIssuer != asset.Issuer {
			continue
		}
		amount, err := decimal.NewFromString(b.Balance)
		if err != nil {
			continue
		}
		if amount.IsPositive() {
			return true
		}
	}
	return false
}

type Balance struct {
	Balance     string `json:"balance"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
}

// ClaimableBalance is the escrow object holding a token amount claimable
// by one of several predefined parties.
type ClaimableBalance struct {
	ID          string     `json:"id"`
	Asset       string     `json:"asset"`
	Amount      string     `json:"amount"`
	Claimants   []Claimant `json:"claimants"`
	PagingToken string     `json:"paging_token"`
}

type Claimant struct {
	Destination string `json:"destination"`
}

// TxSuccess is the submission acknowledgement.
type TxSuccess struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

type page[T any] struct {
	Embedded struct {
		Records []T `json:"records"`
	} `json:"_embedded"`
}
