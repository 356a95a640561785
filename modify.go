package snsd

import (
	"context"

	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// Modify diffs the supplied profile fields against the data entries on the
// requester's own account and emits one write per field that actually
// changed; a nil field deletes the entry. With no differences the result
// is nil and nothing should be submitted. Profile edits run on the
// account's own sequence at standard fee — no registrar arbitration is
// involved.
func (c *Contract) Modify(ctx context.Context, req schema.ModifyRequest) (*txn.Transaction, error) {
	acc, err := c.cli.LoadAccount(ctx, req.UserAccount)
	if err != nil {
		return nil, err
	}
	seq, err := acc.SequenceNumber()
	if err != nil {
		return nil, err
	}

	b := txn.NewBuilder(req.UserAccount, seq, txn.BaseFee, c.cfg.NetworkPassphrase)
	addProfileDiff(b, acc, schema.DataKeyProfileAccount, req.Fields.Account)
	addProfileDiff(b, acc, schema.DataKeyProfileDiscord, req.Fields.Discord)
	addProfileDiff(b, acc, schema.DataKeyProfileGithub, req.Fields.Github)
	addProfileDiff(b, acc, schema.DataKeyProfileText, req.Fields.Text)

	if b.OperationCount() == 0 {
		return nil, nil
	}
	b.AddMemo(schema.MemoProfileModify).SetTimeout(0)
	return b.Build()
}

func addProfileDiff(b *txn.Builder, acc *horizon.Account, name string, value *string) {
	current, exists := acc.DataValue(name)
	switch {
	case value == nil && exists:
		b.AddOperation(txn.ManageData("", name, nil))
	case value != nil && (!exists || current != *value):
		b.AddOperation(txn.ManageData("", name, value))
	}
}
