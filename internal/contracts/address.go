package contracts

import (
	"fmt"
	"sort"
)

// ContractName identifies a deployed ENS contract.
type ContractName string

const (
	BaseRegistrarImplementation ContractName = "BaseRegistrarImplementation"
	DNSRegistrar                ContractName = "DNSRegistrar"
	ETHRegistrarController      ContractName = "ETHRegistrarController"
	Multicall                   ContractName = "Multicall"
	NameWrapper                 ContractName = "NameWrapper"
	PublicResolver              ContractName = "PublicResolver"
	ENSRegistry                 ContractName = "ENSRegistry"
	ReverseRegistrar            ContractName = "ReverseRegistrar"
	UniversalResolver           ContractName = "UniversalResolver"
	BulkRenewal                 ContractName = "BulkRenewal"
)

// NetworkID identifies a supported network.
type NetworkID string

const (
	Network88 NetworkID = "88"
	Network89 NetworkID = "89"
)

// SupportedNetworks lists every network the default table covers.
var SupportedNetworks = []NetworkID{Network88, Network89}

// ParseNetworkID validates a network identifier.
func ParseNetworkID(input string) (NetworkID, error) {
	for _, id := range SupportedNetworks {
		if string(id) == input {
			return id, nil
		}
	}
	return "", fmt.Errorf("unsupported network: %q", input)
}

// Entry is the deployment of one contract. Global is used for every network
// when set; otherwise the address comes from PerNetwork.
type Entry struct {
	Global     string
	PerNetwork map[NetworkID]string
}

// LookupError reports a contract without an address on a network.
type LookupError struct {
	Contract ContractName
	Network  NetworkID
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no address for contract %s on network %s", e.Contract, e.Network)
}

// AddressFetch resolves a contract address on a bound network.
type AddressFetch func(name ContractName) (string, error)

// Table maps contract names to deployed addresses. It is immutable after construction.
type Table struct {
	entries map[ContractName]Entry
}

// NewTable builds a Table from a copy of entries.
func NewTable(entries map[ContractName]Entry) *Table {
	copied := make(map[ContractName]Entry, len(entries))
	for name, entry := range entries {
		perNetwork := make(map[NetworkID]string, len(entry.PerNetwork))
		for id, addr := range entry.PerNetwork {
			perNetwork[id] = addr
		}
		copied[name] = Entry{Global: entry.Global, PerNetwork: perNetwork}
	}
	return &Table{entries: copied}
}

// Address returns the address of contract on network.
func (t *Table) Address(network NetworkID, name ContractName) (string, error) {
	entry, ok := t.entries[name]
	if !ok {
		return "", &LookupError{Contract: name, Network: network}
	}
	if entry.Global != "" {
		return entry.Global, nil
	}
	addr := entry.PerNetwork[network]
	if addr == "" {
		return "", &LookupError{Contract: name, Network: network}
	}
	return addr, nil
}

// Fetcher binds the table to a network.
func (t *Table) Fetcher(network NetworkID) AddressFetch {
	return func(name ContractName) (string, error) {
		return t.Address(network, name)
	}
}

// Contracts returns the known contract names in sorted order.
func (t *Table) Contracts() []ContractName {
	names := make([]ContractName, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// DefaultTable returns the built-in deployment table.
func DefaultTable() *Table {
	return NewTable(defaultEntries)
}

var defaultEntries = map[ContractName]Entry{
	BaseRegistrarImplementation: {PerNetwork: map[NetworkID]string{
		Network88: "0x57f1887a8bf19b14fc0df6fd9b2acc9af147ea85",
		Network89: "0xce0537BD0F700d014Dca329eF75e344B35bff7e0",
	}},
	DNSRegistrar: {PerNetwork: map[NetworkID]string{
		Network88: "0x58774Bb8acD458A640aF0B88238369A167546ef2",
		Network89: "0x4618A534435f81936CabD630B8DA30A575F71e96",
	}},
	ETHRegistrarController: {PerNetwork: map[NetworkID]string{
		Network88: "0x253553366Da8546fC250F225fe3d25d0C782303b",
		Network89: "0xB56455Cdc9D962dd49284baabF1545F0E10FD3D6",
	}},
	Multicall: {Global: "0xcA11bde05977b3631167028862bE2a173976CA11"},
	NameWrapper: {PerNetwork: map[NetworkID]string{
		Network88: "0xD4416b13d2b3a9aBae7AcD5D6C2BbDBE25686401",
		Network89: "0xc51131DF692Ea113aCe23a6F84F9DADfE725dB82",
	}},
	PublicResolver: {PerNetwork: map[NetworkID]string{
		Network88: "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63",
		Network89: "0x96a386bef3Ab62F8b166a3F2cdd352fD2a33FB51",
	}},
	ENSRegistry: {PerNetwork: map[NetworkID]string{
		Network88: "0x00000000000c2e074ec69a0dfb2997ba6c7d2e1e",
		Network89: "0xB377E85fe2233734b47C90e7403FAEFb40Ba9aE6",
	}},
	ReverseRegistrar: {PerNetwork: map[NetworkID]string{
		Network88: "0xa58E81fe9b61B5c3fE2AFD33CF304c454AbFc7Cb",
		Network89: "0x2E52598E3d04Eb558983100eFFdDe889b660f7a3",
	}},
	UniversalResolver: {PerNetwork: map[NetworkID]string{
		Network88: "0xc0497e381f536be9ce14b0dd3817cbcae57d2f62",
		Network89: "0xBF3D8E093eC723684f5eF9C2eBB40424E1E1eE68",
	}},
	BulkRenewal: {PerNetwork: map[NetworkID]string{
		Network88: "0xa12159e5131b1eEf6B4857EEE3e1954744b5033A",
		Network89: "0x3Fa6302f3F4416d1B57572529a5928C682b74CA5",
	}},
}
