package txn

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// BaseFee is the standard per-operation fee in stroops.
const BaseFee int64 = 100

var (
	ErrEmptyEnvelope   = errors.New("empty_envelope")
	ErrInvalidEnvelope = errors.New("invalid_envelope")
)

type DecoratedSignature struct {
	Hint      string `json:"hint"`
	Signature string `json:"signature"`
}

type txBody struct {
	Source     string      `json:"source"`
	Fee        int64       `json:"fee"`
	Sequence   int64       `json:"sequence"`
	Memo       string      `json:"memo,omitempty"`
	MaxTime    int64       `json:"maxTime,omitempty"`
	Operations []Operation `json:"operations"`
}

type envelope struct {
	Tx         txBody               `json:"tx"`
	Signatures []DecoratedSignature `json:"signatures,omitempty"`
}

// Transaction is a built, immutable transaction. The serialized body is
// fixed at build time; signing only appends to the signature list, so a
// service can co-sign a decoded envelope without disturbing existing
// signatures.
type Transaction struct {
	network    string
	body       txBody
	payload    []byte
	Signatures []DecoratedSignature
}

// Builder assembles a transaction sequenced against a source account.
// sequence is the account's current sequence number; the built transaction
// consumes sequence+1, so two envelopes built against the same observed
// sequence can never both be accepted by the ledger.
type Builder struct {
	network string
	body    txBody
}

func NewBuilder(sourceAccount string, sequence, fee int64, network string) *Builder {
	return &Builder{
		network: network,
		body: txBody{
			Source:     sourceAccount,
			Fee:        fee,
			Sequence:   sequence + 1,
			Operations: make([]Operation, 0, 8),
		},
	}
}

func (b *Builder) AddOperation(op Operation) *Builder {
	b.body.Operations = append(b.body.Operations, op)
	return b
}

func (b *Builder) AddMemo(memo string) *Builder {
	b.body.Memo = memo
	return b
}

// SetTimeout bounds the transaction validity window; zero means unbounded.
func (b *Builder) SetTimeout(seconds int64) *Builder {
	if seconds > 0 {
		b.body.MaxTime = time.Now().Unix() + seconds
	} else {
		b.body.MaxTime = 0
	}
	return b
}

func (b *Builder) OperationCount() int {
	return len(b.body.Operations)
}

func (b *Builder) Build() (*Transaction, error) {
	payload, err := json.Marshal(b.body)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		network: b.network,
		body:    b.body,
		payload: payload,
	}, nil
}

// Hash is the signature base: the network passphrase hash prefixed to the
// serialized body, hashed. Binding the network id in keeps a testnet
// envelope from ever validating on the public network.
func (t *Transaction) Hash() [32]byte {
	networkID := sha256.Sum256([]byte(t.network))
	h := sha256.New()
	h.Write(networkID[:])
	h.Write(t.payload)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashHex is the lowercase hex transaction hash, used as archive key.
func (t *Transaction) HashHex() string {
	h := t.Hash()
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0xf]
	}
	return string(out)
}

func (t *Transaction) Sign(kps ...*Keypair) {
	h := t.Hash()
	for _, kp := range kps {
		t.Signatures = append(t.Signatures, kp.Sign(h[:]))
	}
}

func (t *Transaction) Source() string          { return t.body.Source }
func (t *Transaction) Fee() int64              { return t.body.Fee }
func (t *Transaction) Sequence() int64         { return t.body.Sequence }
func (t *Transaction) Memo() string            { return t.body.Memo }
func (t *Transaction) Operations() []Operation { return t.body.Operations }

// Envelope renders the transaction plus signatures as a base64 string.
func (t *Transaction) Envelope() (string, error) {
	raw, err := json.Marshal(envelope{Tx: t.body, Signatures: t.Signatures})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeEnvelope parses an envelope back into a signable transaction bound
// to the given network passphrase.
func DecodeEnvelope(env, network string) (*Transaction, error) {
	if env == "" {
		return nil, ErrEmptyEnvelope
	}
	raw, err := base64.StdEncoding.DecodeString(env)
	if err != nil {
		return nil, ErrInvalidEnvelope
	}
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, ErrInvalidEnvelope
	}
	if e.Tx.Source == "" {
		return nil, ErrInvalidEnvelope
	}
	payload, err := json.Marshal(e.Tx)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		network:    network,
		body:       e.Tx,
		payload:    payload,
		Signatures: e.Signatures,
	}, nil
}

type feeBumpBody struct {
	FeeSource string `json:"feeSource"`
	Fee       int64  `json:"fee"`
	InnerTx   string `json:"innerTx"`
}

type feeBumpEnvelope struct {
	Tx         feeBumpBody          `json:"feeBump"`
	Signatures []DecoratedSignature `json:"signatures,omitempty"`
}

// FeeBump wraps an inner zero-fee envelope in an outer transaction whose
// fee source pays for submission.
type FeeBump struct {
	network    string
	body       feeBumpBody
	payload    []byte
	Signatures []DecoratedSignature
}

func NewFeeBump(feeSource string, baseFee int64, innerEnvelope, network string) (*FeeBump, error) {
	if innerEnvelope == "" {
		return nil, ErrEmptyEnvelope
	}
	body := feeBumpBody{FeeSource: feeSource, Fee: baseFee, InnerTx: innerEnvelope}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &FeeBump{network: network, body: body, payload: payload}, nil
}

func (f *FeeBump) Hash() [32]byte {
	networkID := sha256.Sum256([]byte(f.network))
	h := sha256.New()
	h.Write(networkID[:])
	h.Write(f.payload)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (f *FeeBump) Sign(kps ...*Keypair) {
	h := f.Hash()
	for _, kp := range kps {
		f.Signatures = append(f.Signatures, kp.Sign(h[:]))
	}
}

func (f *FeeBump) Envelope() (string, error) {
	raw, err := json.Marshal(feeBumpEnvelope{Tx: f.body, Signatures: f.Signatures})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
