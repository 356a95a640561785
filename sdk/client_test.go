package sdk

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarns/snsd/schema"
	"github.com/stellarns/snsd/txn"
)

const testNetwork = "Test SDF Network ; September 2015"

func builtEnvelope(t *testing.T, memo string, presign *txn.Keypair) string {
	t.Helper()
	value := "alice.stellar"
	b := txn.NewBuilder("GREGISTRAR", 41, 0, testNetwork)
	b.AddOperation(txn.ManageData("GREGISTRAR", "domain", &value)).AddMemo(memo)
	tx, err := b.Build()
	require.NoError(t, err)
	if presign != nil {
		tx.Sign(presign)
	}
	env, err := tx.Envelope()
	require.NoError(t, err)
	return env
}

func innerOf(t *testing.T, bumpEnvelope string) *txn.Transaction {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(bumpEnvelope)
	require.NoError(t, err)
	var outer struct {
		FeeBump struct {
			FeeSource string `json:"feeSource"`
			InnerTx   string `json:"innerTx"`
		} `json:"feeBump"`
		Signatures []txn.DecoratedSignature `json:"signatures"`
	}
	require.NoError(t, json.Unmarshal(raw, &outer))
	require.Len(t, outer.Signatures, 1)
	inner, err := txn.DecodeEnvelope(outer.FeeBump.InnerTx, testNetwork)
	require.NoError(t, err)
	return inner
}

func TestSignAndBump(t *testing.T) {
	issuer, err := txn.Random()
	require.NoError(t, err)
	wallet, err := txn.Random()
	require.NoError(t, err)

	res := schema.ContractResult{
		XDR:               builtEnvelope(t, schema.MemoDomainCreate, issuer),
		NetworkPassphrase: testNetwork,
	}
	bumped, err := New("http://sns", "http://horizon", testNetwork).SignAndBump(res, wallet)
	require.NoError(t, err)

	inner := innerOf(t, bumped)
	// issuer pre-signature preserved, wallet signature appended
	require.Len(t, inner.Signatures, 2)
	h := inner.Hash()
	assert.True(t, issuer.Verify(h[:], sigBytes(t, inner.Signatures[0])))
	assert.True(t, wallet.Verify(h[:], sigBytes(t, inner.Signatures[1])))
}

func TestSignAndBumpSkipsRenewal(t *testing.T) {
	wallet, err := txn.Random()
	require.NoError(t, err)

	res := schema.ContractResult{
		XDR:               builtEnvelope(t, schema.MemoDomainRenew, nil),
		NetworkPassphrase: testNetwork,
	}
	bumped, err := New("http://sns", "http://horizon", testNetwork).SignAndBump(res, wallet)
	require.NoError(t, err)

	// renewals touch only registrar-held entries: the wallet signs the
	// outer fee bump and nothing else
	inner := innerOf(t, bumped)
	assert.Empty(t, inner.Signatures)
}

func sigBytes(t *testing.T, sig txn.DecoratedSignature) []byte {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(sig.Signature)
	require.NoError(t, err)
	return raw
}
