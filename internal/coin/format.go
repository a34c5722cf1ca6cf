package coin

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Encoder turns raw address bytes as stored by a resolver into the
// chain's textual address form.
type Encoder func(data []byte) (string, error)

// Format describes how addresses for a coin type are rendered.
type Format struct {
	CoinType uint64
	Name     string
	Encode   Encoder
}

// Registry maps coin types to address formats.
type Registry struct {
	formats map[uint64]Format
}

// NewRegistry builds a registry from formats. Later entries win on duplicate coin types.
func NewRegistry(formats ...Format) *Registry {
	r := &Registry{formats: make(map[uint64]Format, len(formats))}
	for _, f := range formats {
		r.formats[f.CoinType] = f
	}
	return r
}

// Lookup returns the format registered for coinType.
func (r *Registry) Lookup(coinType uint64) (Format, bool) {
	if r == nil {
		return Format{}, false
	}
	f, ok := r.formats[coinType]
	return f, ok
}

// evmCoinType derives the ENSIP-11 coin type for an EVM chain id.
func evmCoinType(chainID uint64) uint64 {
	return 0x80000000 | chainID
}

// DefaultRegistry returns the built-in coin formats.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Format{CoinType: 0, Name: "BTC", Encode: bitcoinEncoder(bitcoinParams{p2pkh: 0x00, p2sh: 0x05, hrp: "bc"})},
		Format{CoinType: 2, Name: "LTC", Encode: bitcoinEncoder(bitcoinParams{p2pkh: 0x30, p2sh: 0x32, hrp: "ltc"})},
		Format{CoinType: 3, Name: "DOGE", Encode: bitcoinEncoder(bitcoinParams{p2pkh: 0x1e, p2sh: 0x16})},
		Format{CoinType: 60, Name: "ETH", Encode: encodeHexChecksum},
		Format{CoinType: 61, Name: "ETC", Encode: encodeHexChecksum},
		Format{CoinType: 700, Name: "XDAI", Encode: encodeHexChecksum},
		Format{CoinType: evmCoinType(10), Name: "OP", Encode: encodeHexChecksum},
		Format{CoinType: evmCoinType(137), Name: "MATIC", Encode: encodeHexChecksum},
		Format{CoinType: evmCoinType(8453), Name: "BASE", Encode: encodeHexChecksum},
		Format{CoinType: evmCoinType(42161), Name: "ARB1", Encode: encodeHexChecksum},
	)
}

func encodeHexChecksum(data []byte) (string, error) {
	if len(data) != common.AddressLength {
		return "", fmt.Errorf("invalid address length: %d", len(data))
	}
	return common.BytesToAddress(data).Hex(), nil
}

// IsZero reports whether data holds no non-zero byte.
func IsZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
