package coin

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
)

type bitcoinParams struct {
	p2pkh byte
	p2sh  byte
	hrp   string
}

// bitcoinEncoder renders an output script (P2PKH, P2SH or v0 witness program)
// as an address. Resolvers store bitcoin-family addresses as scriptPubKey bytes.
func bitcoinEncoder(params bitcoinParams) Encoder {
	return func(script []byte) (string, error) {
		switch {
		case len(script) == 25 && script[0] == 0x76 && script[1] == 0xa9 && script[2] == 0x14 &&
			script[23] == 0x88 && script[24] == 0xac:
			return base58.CheckEncode(script[3:23], params.p2pkh), nil
		case len(script) == 23 && script[0] == 0xa9 && script[1] == 0x14 && script[22] == 0x87:
			return base58.CheckEncode(script[2:22], params.p2sh), nil
		case len(script) >= 4 && script[0] == 0x00 && int(script[1]) == len(script)-2:
			if params.hrp == "" {
				return "", fmt.Errorf("segwit not supported")
			}
			program := script[2:]
			if len(program) != 20 && len(program) != 32 {
				return "", fmt.Errorf("invalid witness program length: %d", len(program))
			}
			converted, err := bech32.ConvertBits(program, 8, 5, true)
			if err != nil {
				return "", fmt.Errorf("convert witness program: %w", err)
			}
			return bech32.Encode(params.hrp, append([]byte{0x00}, converted...))
		default:
			return "", fmt.Errorf("unrecognised output script")
		}
	}
}
