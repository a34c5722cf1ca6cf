package resolver

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const publicResolverABIJSON = `[
  {
    "inputs": [
      {"internalType": "bytes32", "name": "node", "type": "bytes32"},
      {"internalType": "string", "name": "key", "type": "string"},
      {"internalType": "string", "name": "value", "type": "string"}
    ],
    "name": "setText",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "node", "type": "bytes32"},
      {"internalType": "address", "name": "a", "type": "address"}
    ],
    "name": "setAddr",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "node", "type": "bytes32"},
      {"internalType": "bytes", "name": "hash", "type": "bytes"}
    ],
    "name": "setContenthash",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes[]", "name": "data", "type": "bytes[]"}
    ],
    "name": "multicall",
    "outputs": [{"internalType": "bytes[]", "name": "results", "type": "bytes[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	publicResolverABI     abi.ABI
	publicResolverABIOnce sync.Once
	publicResolverABIErr  error
)

// PublicResolverABI returns the parsed public resolver ABI.
func PublicResolverABI() (abi.ABI, error) {
	publicResolverABIOnce.Do(func() {
		publicResolverABI, publicResolverABIErr = abi.JSON(strings.NewReader(publicResolverABIJSON))
	})
	return publicResolverABI, publicResolverABIErr
}
