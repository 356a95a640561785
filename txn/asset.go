package txn

import (
	"errors"
	"strings"
)

var ErrInvalidAsset = errors.New("invalid_asset")

// Asset identifies a ledger-issued token by (code, issuer account).
type Asset struct {
	Code   string `json:"code"`
	Issuer string `json:"issuer"`
}

func NewAsset(code, issuer string) Asset {
	return Asset{Code: code, Issuer: issuer}
}

// Type mirrors the asset type tags the ledger reports on balance lines.
func (a Asset) Type() string {
	switch {
	case a.Issuer == "":
		return "native"
	case len(a.Code) <= 4:
		return "credit_alphanum4"
	default:
		return "credit_alphanum12"
	}
}

// String renders the canonical code:issuer form used in query filters.
func (a Asset) String() string {
	if a.Issuer == "" {
		return "native"
	}
	return a.Code + ":" + a.Issuer
}

func ParseAsset(s string) (Asset, error) {
	if s == "native" {
		return Asset{}, nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Asset{}, ErrInvalidAsset
	}
	return Asset{Code: parts[0], Issuer: parts[1]}, nil
}
