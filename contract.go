package snsd

import (
	"context"
	"time"

	"github.com/stellarns/snsd/config"
	"github.com/stellarns/snsd/horizon"
)

// Contract assembles unsigned transaction envelopes for domain lifecycle
// operations. Every call resolves ledger state fresh through its own
// resolver; envelopes are built against the state observed inside the call
// and rely on ledger sequence numbers, not local locking, to reject racing
// duplicates.
type Contract struct {
	res *Resolver
	cli *horizon.Client
	cfg config.Config
	now func() int64
}

func NewContract(cli *horizon.Client, cfg config.Config) *Contract {
	return &Contract{
		res: NewResolver(cli, cfg.RegistrarAccount),
		cli: cli,
		cfg: cfg,
		now: func() int64 { return time.Now().Unix() },
	}
}

// registrarSequence loads the registrar account's current sequence number.
// Identity-creating envelopes are sequenced by the registrar so that a
// racing duplicate registration fails at submission instead of minting a
// second issuer.
func (c *Contract) registrarSequence(ctx context.Context) (int64, error) {
	acc, err := c.cli.LoadAccount(ctx, c.cfg.RegistrarAccount)
	if err != nil {
		return 0, err
	}
	return acc.SequenceNumber()
}
