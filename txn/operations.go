package txn

// Issuer account authorization flags.
const (
	AuthRequiredFlag        uint32 = 1
	AuthRevocableFlag       uint32 = 2
	AuthImmutableFlag       uint32 = 4
	AuthClawbackEnabledFlag uint32 = 8
)

// Operation type tags.
const (
	OpCreateAccount          = "create_account"
	OpSetOptions             = "set_options"
	OpManageData             = "manage_data"
	OpChangeTrust            = "change_trust"
	OpSetTrustLineFlags      = "set_trust_line_flags"
	OpPayment                = "payment"
	OpClawback               = "clawback"
	OpCreateClaimableBalance = "create_claimable_balance"
	OpClaimClaimableBalance  = "claim_claimable_balance"
)

type Signer struct {
	Key    string `json:"key"`
	Weight int    `json:"weight"`
}

// Claimant names one party allowed to claim a claimable balance. Only the
// unconditional predicate is used here.
type Claimant struct {
	Destination string `json:"destination"`
	Predicate   string `json:"predicate"`
}

func UnconditionalClaimant(destination string) Claimant {
	return Claimant{Destination: destination, Predicate: "unconditional"}
}

type TrustLineFlags struct {
	Authorized bool `json:"authorized"`
}

// Operation is a single ledger operation inside a transaction. One flat
// struct covers every operation kind; unused fields stay empty and are
// omitted from the serialized form. Constructors below set the type tag
// and the fields that kind uses.
type Operation struct {
	Type            string          `json:"type"`
	Source          string          `json:"source,omitempty"`
	Destination     string          `json:"destination,omitempty"`
	StartingBalance string          `json:"startingBalance,omitempty"`
	Asset           *Asset          `json:"asset,omitempty"`
	Limit           string          `json:"limit,omitempty"`
	Trustor         string          `json:"trustor,omitempty"`
	Flags           *TrustLineFlags `json:"flags,omitempty"`
	Amount          string          `json:"amount,omitempty"`
	From            string          `json:"from,omitempty"`
	Name            string          `json:"name,omitempty"`
	Value           *string         `json:"value,omitempty"`
	Claimants       []Claimant      `json:"claimants,omitempty"`
	BalanceID       string          `json:"balanceId,omitempty"`
	SetFlags        uint32          `json:"setFlags,omitempty"`
	Signer          *Signer         `json:"signer,omitempty"`
	MasterWeight    *int            `json:"masterWeight,omitempty"`
	InflationDest   string          `json:"inflationDest,omitempty"`
}

func CreateAccount(source, destination, startingBalance string) Operation {
	return Operation{
		Type:            OpCreateAccount,
		Source:          source,
		Destination:     destination,
		StartingBalance: startingBalance,
	}
}

// SetOptions configures account flags, an additional signer and the master
// key weight in one operation. inflationDest may be empty.
func SetOptions(source string, setFlags uint32, signer *Signer, masterWeight int, inflationDest string) Operation {
	mw := masterWeight
	return Operation{
		Type:          OpSetOptions,
		Source:        source,
		SetFlags:      setFlags,
		Signer:        signer,
		MasterWeight:  &mw,
		InflationDest: inflationDest,
	}
}

// ManageData writes (or with a nil value deletes) one key/value entry on
// the source account.
func ManageData(source, name string, value *string) Operation {
	return Operation{
		Type:   OpManageData,
		Source: source,
		Name:   name,
		Value:  value,
	}
}

func ChangeTrust(source string, asset Asset, limit string) Operation {
	a := asset
	return Operation{
		Type:   OpChangeTrust,
		Source: source,
		Asset:  &a,
		Limit:  limit,
	}
}

func SetTrustLineFlags(source, trustor string, asset Asset, authorized bool) Operation {
	a := asset
	return Operation{
		Type:    OpSetTrustLineFlags,
		Source:  source,
		Trustor: trustor,
		Asset:   &a,
		Flags:   &TrustLineFlags{Authorized: authorized},
	}
}

func Payment(source, destination string, asset Asset, amount string) Operation {
	a := asset
	return Operation{
		Type:        OpPayment,
		Source:      source,
		Destination: destination,
		Asset:       &a,
		Amount:      amount,
	}
}

func Clawback(source, from string, asset Asset, amount string) Operation {
	a := asset
	return Operation{
		Type:   OpClawback,
		Source: source,
		From:   from,
		Asset:  &a,
		Amount: amount,
	}
}

func CreateClaimableBalance(source string, claimants []Claimant, asset Asset, amount string) Operation {
	a := asset
	return Operation{
		Type:      OpCreateClaimableBalance,
		Source:    source,
		Claimants: claimants,
		Asset:     &a,
		Amount:    amount,
	}
}

func ClaimClaimableBalance(source, balanceID string) Operation {
	return Operation{
		Type:      OpClaimClaimableBalance,
		Source:    source,
		BalanceID: balanceID,
	}
}
