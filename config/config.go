package config

import (
	"strings"
)

// Network passphrases for the well-known networks.
const (
	PublicPassphrase  = "Public Global Stellar Network ; September 2015"
	TestnetPassphrase = "Test SDF Network ; September 2015"
)

// Config is the immutable process-wide configuration. It is constructed
// once in cmd and injected into every resolver and builder call; nothing
// reads configuration ambiently.
type Config struct {
	HorizonURL        string
	NetworkPassphrase string
	RegistrarAccount  string
	SignerSecret      string
	DomainExpiration  int64 // seconds
}

func New(horizonURL, network, registrar, signerSecret string, expirationSeconds int64) Config {
	return Config{
		HorizonURL:        horizonURL,
		NetworkPassphrase: Passphrase(network),
		RegistrarAccount:  registrar,
		SignerSecret:      signerSecret,
		DomainExpiration:  expirationSeconds,
	}
}

// Passphrase maps a network name to its passphrase; anything other than
// the well-known names is taken as a custom passphrase verbatim.
func Passphrase(network string) string {
	switch strings.ToUpper(network) {
	case "PUBLIC":
		return PublicPassphrase
	case "TESTNET":
		return TestnetPassphrase
	default:
		return network
	}
}
