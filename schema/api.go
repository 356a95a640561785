package schema

// Contract command names routed by POST /contract/:command.
const (
	CmdRegister    = "register"
	CmdSubregister = "subregister"
	CmdTransfer    = "transfer"
	CmdModify      = "modify"
)

type RegisterRequest struct {
	Domain      string `json:"domain"`
	UserAccount string `json:"userAccount"`
}

type SubregisterRequest struct {
	Domain      string `json:"domain"`
	Label       string `json:"label"`
	UserAccount string `json:"userAccount"`
}

// TransferRequest serves both transfer phases: TargetAccount selects the
// begin phase, BalanceID the end phase. Setting both or neither is
// rejected.
type TransferRequest struct {
	Domain        string `json:"domain"`
	UserAccount   string `json:"userAccount"`
	TargetAccount string `json:"targetAccount,omitempty"`
	BalanceID     string `json:"balanceId,omitempty"`
}

type ModifyRequest struct {
	UserAccount string      `json:"userAccount"`
	Fields      ProfileData `json:"fields"`
}

// ContractResult carries a built envelope back to the caller along with
// the network it was built against.
type ContractResult struct {
	XDR               string `json:"xdr"`
	NetworkPassphrase string `json:"networkPassphrase"`
}

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}
