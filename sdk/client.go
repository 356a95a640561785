package sdk

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/h2non/gentleman.v2"
	"gopkg.in/h2non/gentleman.v2/plugins/body"

	"github.com/stellarns/snsd/horizon"
	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

// Client drives the naming service API and submits the resulting
// envelopes to the ledger network on behalf of a wallet keypair.
type Client struct {
	SCli    *gentleman.Client
	HCli    *horizon.Client
	network string
}

func New(snsUrl, horizonUrl, networkPassphrase string) *Client {
	return &Client{
		SCli:    gentleman.New().URL(snsUrl),
		HCli:    horizon.New(horizonUrl),
		network: networkPassphrase,
	}
}

func (c *Client) Lookup(domain string) (res schema.LookupResult, err error) {
	req := c.SCli.Get()
	req.AddPath("/lookup")
	req.SetQuery("domain", domain)
	resp, err := req.Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return res, errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	err = resp.JSON(&res)
	return
}

func (c *Client) Register(domain, userAccount string) (schema.ContractResult, error) {
	return c.postContract(schema.CmdRegister, schema.RegisterRequest{
		Domain:      domain,
		UserAccount: userAccount,
	})
}

func (c *Client) Subregister(domain, label, userAccount string) (schema.ContractResult, error) {
	return c.postContract(schema.CmdSubregister, schema.SubregisterRequest{
		Domain:      domain,
		Label:       label,
		UserAccount: userAccount,
	})
}

func (c *Client) TransferStart(domain, userAccount, targetAccount string) (schema.ContractResult, error) {
	return c.postContract(schema.CmdTransfer, schema.TransferRequest{
		Domain:        domain,
		UserAccount:   userAccount,
		TargetAccount: targetAccount,
	})
}

func (c *Client) TransferEnd(domain, userAccount, balanceId string) (schema.ContractResult, error) {
	return c.postContract(schema.CmdTransfer, schema.TransferRequest{
		Domain:      domain,
		UserAccount: userAccount,
		BalanceID:   balanceId,
	})
}

func (c *Client) Modify(userAccount string, fields schema.ProfileData) (schema.ContractResult, error) {
	return c.postContract(schema.CmdModify, schema.ModifyRequest{
		UserAccount: userAccount,
		Fields:      fields,
	})
}

func (c *Client) postContract(command string, payload interface{}) (res schema.ContractResult, err error) {
	req := c.SCli.Post()
	req.AddPath(fmt.Sprintf("/contract/%s", command))
	req.Use(body.JSON(payload))
	resp, err := req.Send()
	if err != nil {
		return
	}
	defer resp.Close()
	if !resp.Ok {
		return res, errors.New(fmt.Sprintf("resp failed: %s", resp.String()))
	}
	err = resp.JSON(&res)
	return
}

// SignAndBump signs the inner envelope with the wallet key where the
// wallet's signature is needed, then wraps it in a fee-bump envelope paid
// and signed by the same key. Renewals run entirely on registrar-held
// entries, so the inner envelope needs no wallet signature.
func (c *Client) SignAndBump(res schema.ContractResult, signer *txn.Keypair) (string, error) {
	inner, err := txn.DecodeEnvelope(res.XDR, res.NetworkPassphrase)
	if err != nil {
		return "", err
	}
	if inner.Memo() != schema.MemoDomainRenew {
		inner.Sign(signer)
	}
	innerEnvelope, err := inner.Envelope()
	if err != nil {
		return "", err
	}

	bump, err := txn.NewFeeBump(signer.Address(), txn.BaseFee, innerEnvelope, res.NetworkPassphrase)
	if err != nil {
		return "", err
	}
	bump.Sign(signer)
	return bump.Envelope()
}

// SignAndSubmit runs SignAndBump and submits the result to the ledger.
// Zero-fee envelopes (register, subregister) must go through here or an
// equivalent fee bump; direct submission is rejected by the network.
func (c *Client) SignAndSubmit(ctx context.Context, res schema.ContractResult, signer *txn.Keypair) (*horizon.TxSuccess, error) {
	envelope, err := c.SignAndBump(res, signer)
	if err != nil {
		return nil, err
	}
	return c.HCli.SubmitTransaction(ctx, envelope)
}

// SignAndSubmitDirect signs and submits an envelope that already carries
// its own fee (transfer phases, profile edits).
func (c *Client) SignAndSubmitDirect(ctx context.Context, res schema.ContractResult, signer *txn.Keypair) (*horizon.TxSuccess, error) {
	tx, err := txn.DecodeEnvelope(res.XDR, res.NetworkPassphrase)
	if err != nil {
		return nil, err
	}
	tx.Sign(signer)
	envelope, err := tx.Envelope()
	if err != nil {
		return nil, err
	}
	return c.HCli.SubmitTransaction(ctx, envelope)
}
