package txn

import (
	"encoding/base32"
	"errors"
)

// strkey version bytes, shifted so the encoded form starts with a
// recognizable letter: G for account ids, S for seeds.
const (
	VersionAccountID byte = 6 << 3
	VersionSeed      byte = 18 << 3
)

var (
	ErrInvalidStrkey   = errors.New("invalid_strkey")
	ErrInvalidChecksum = errors.New("invalid_strkey_checksum")
	ErrInvalidVersion  = errors.New("invalid_strkey_version")
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// crc16 implements CRC16-XModem (poly 0x1021, init 0x0000).
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// EncodeStrkey renders a 32-byte payload as a checked base32 string.
func EncodeStrkey(version byte, payload []byte) string {
	raw := make([]byte, 0, len(payload)+3)
	raw = append(raw, version)
	raw = append(raw, payload...)
	crc := crc16(raw)
	raw = append(raw, byte(crc&0xff), byte(crc>>8))
	return b32.EncodeToString(raw)
}

// DecodeStrkey reverses EncodeStrkey, verifying version byte and checksum.
func DecodeStrkey(version byte, s string) ([]byte, error) {
	raw, err := b32.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidStrkey
	}
	if len(raw) < 3 {
		return nil, ErrInvalidStrkey
	}
	payload := raw[:len(raw)-2]
	sum := uint16(raw[len(raw)-2]) | uint16(raw[len(raw)-1])<<8
	if crc16(payload) != sum {
		return nil, ErrInvalidChecksum
	}
	if payload[0] != version {
		return nil, ErrInvalidVersion
	}
	return payload[1:], nil
}
