package contenthash

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	ens "github.com/wealdtech/go-ens/v3"
)

// ContentHash is a decoded EIP-1577 content hash.
type ContentHash struct {
	ProtocolType string `json:"protocolType"`
	Decoded      string `json:"decoded"`
}

// Decode parses a hex encoded content hash. An empty hash decodes to nil.
func Decode(raw string) (*ContentHash, error) {
	data, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses a binary content hash.
func DecodeBytes(data []byte) (hash *ContentHash, err error) {
	if len(data) == 0 {
		return nil, nil
	}

	// codec parsing may panic on truncated input
	defer func() {
		if r := recover(); r != nil {
			hash, err = nil, fmt.Errorf("decode content hash: %v", r)
		}
	}()

	text, err := ens.ContenthashToString(data)
	if err != nil {
		return nil, fmt.Errorf("decode content hash: %w", err)
	}
	return parseText(text)
}

// parseText splits "/ipfs/<cid>" and "bzz://<hash>" forms.
func parseText(text string) (*ContentHash, error) {
	if strings.HasPrefix(text, "/") {
		parts := strings.SplitN(strings.TrimPrefix(text, "/"), "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			if parts[0] == "ipfs" {
				return &ContentHash{ProtocolType: parts[0], Decoded: ipfsLocator(parts[1])}, nil
			}
			return &ContentHash{ProtocolType: parts[0], Decoded: parts[1]}, nil
		}
	}
	if protocol, locator, ok := strings.Cut(text, "://"); ok && protocol != "" && locator != "" {
		return &ContentHash{ProtocolType: protocol, Decoded: locator}, nil
	}
	return nil, fmt.Errorf("unrecognised content hash %q", text)
}

// ipfsLocator renders dag-pb sha2-256 CIDs in their base58 v0 form.
func ipfsLocator(locator string) string {
	c, err := cid.Decode(locator)
	if err != nil {
		return locator
	}
	if c.Type() != cid.DagProtobuf || c.Prefix().MhType != multihash.SHA2_256 {
		return locator
	}
	return cid.NewCidV0(c.Hash()).String()
}
