package txn

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
)

var (
	ErrInvalidAddress = errors.New("invalid_account_address")
	ErrInvalidSeed    = errors.New("invalid_secret_seed")
)

// Keypair is an ed25519 keypair addressed in strkey form. A full keypair
// can sign; one decoded from an address only verifies.
type Keypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// Random generates a throwaway keypair, used as the one-time issuer
// identity of a freshly registered domain.
func Random() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Keypair{pub: pub, priv: priv}, nil
}

// FromSecret rebuilds a keypair from an S... seed string.
func FromSecret(seed string) (*Keypair, error) {
	raw, err := DecodeStrkey(VersionSeed, seed)
	if err != nil || len(raw) != ed25519.SeedSize {
		return nil, ErrInvalidSeed
	}
	priv := ed25519.NewKeyFromSeed(raw)
	return &Keypair{pub: priv.Public().(ed25519.PublicKey), priv: priv}, nil
}

// FromAddress builds a verify-only keypair from a G... account id.
func FromAddress(address string) (*Keypair, error) {
	pub, err := DecodeAddress(address)
	if err != nil {
		return nil, err
	}
	return &Keypair{pub: pub}, nil
}

// DecodeAddress extracts the raw public key from a G... account id.
func DecodeAddress(address string) (ed25519.PublicKey, error) {
	raw, err := DecodeStrkey(VersionAccountID, address)
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, ErrInvalidAddress
	}
	return ed25519.PublicKey(raw), nil
}

func (kp *Keypair) Address() string {
	return EncodeStrkey(VersionAccountID, kp.pub)
}

func (kp *Keypair) Seed() string {
	if kp.priv == nil {
		return ""
	}
	return EncodeStrkey(VersionSeed, kp.priv.Seed())
}

// Hint is the last four bytes of the public key, attached to signatures
// so verifiers can pick the matching signer without trial verification.
func (kp *Keypair) Hint() []byte {
	return kp.pub[len(kp.pub)-4:]
}

func (kp *Keypair) Sign(input []byte) DecoratedSignature {
	sig := ed25519.Sign(kp.priv, input)
	return DecoratedSignature{
		Hint:      base64.StdEncoding.EncodeToString(kp.Hint()),
		Signature: base64.StdEncoding.EncodeToString(sig),
	}
}

func (kp *Keypair) Verify(input []byte, sig []byte) bool {
	return ed25519.Verify(kp.pub, input, sig)
}
