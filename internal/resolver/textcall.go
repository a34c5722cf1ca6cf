package resolver

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"ensScope/internal/model"
)

// SetTextSelector is the function selector of setText(bytes32,string,string).
var SetTextSelector = []byte{0x10, 0xf1, 0x3a, 0x8c}

const lengthFieldSize = 32

// SelectorOffsets returns every byte offset of selector in input, ascending.
func SelectorOffsets(input, selector []byte) []int {
	if len(selector) == 0 {
		return nil
	}
	var offsets []int
	for start := 0; start+len(selector) <= len(input); {
		idx := bytes.Index(input[start:], selector)
		if idx < 0 {
			break
		}
		offsets = append(offsets, start+idx)
		start += idx + 1
	}
	return offsets
}

// Payload is one candidate setText call sliced out of a transaction input.
// Data is nil when no length could be read for the offset.
type Payload struct {
	Offset int
	Data   []byte
}

// Payloads slices a candidate call out of input for every setText selector.
// A call at offset zero spans the whole input; nested calls are preceded by
// their 32-byte ABI length word.
func Payloads(input []byte) []Payload {
	offsets := SelectorOffsets(input, SetTextSelector)
	out := make([]Payload, 0, len(offsets))
	for _, offset := range offsets {
		if offset == 0 {
			out = append(out, Payload{Offset: 0, Data: input})
			continue
		}
		if offset < lengthFieldSize {
			out = append(out, Payload{Offset: offset})
			continue
		}
		length := new(big.Int).SetBytes(input[offset-lengthFieldSize : offset])
		end := len(input)
		if length.IsInt64() && length.Int64() < int64(len(input)-offset) {
			end = offset + int(length.Int64())
		}
		out = append(out, Payload{Offset: offset, Data: input[offset:end]})
	}
	return out
}

// TextCallDecoder decodes setText calls embedded in transaction input.
type TextCallDecoder struct {
	method abi.Method
}

// NewTextCallDecoder builds a decoder bound to the public resolver ABI.
func NewTextCallDecoder() (*TextCallDecoder, error) {
	parsed, err := PublicResolverABI()
	if err != nil {
		return nil, fmt.Errorf("parse resolver abi: %w", err)
	}
	method, ok := parsed.Methods["setText"]
	if !ok {
		return nil, fmt.Errorf("resolver abi has no setText")
	}
	return &TextCallDecoder{method: method}, nil
}

// Decode returns one entry per detected setText selector in input, in offset
// order. Entries that fail to decode are nil.
func (d *TextCallDecoder) Decode(input []byte) []*model.TextRecord {
	payloads := Payloads(input)
	out := make([]*model.TextRecord, 0, len(payloads))
	for _, payload := range payloads {
		record, err := d.DecodeCall(payload.Data)
		if err != nil {
			out = append(out, nil)
			continue
		}
		out = append(out, record)
	}
	return out
}

// DecodeCall decodes a single setText call.
func (d *TextCallDecoder) DecodeCall(data []byte) (*model.TextRecord, error) {
	if len(data) < len(d.method.ID) || !bytes.Equal(data[:len(d.method.ID)], d.method.ID) {
		return nil, fmt.Errorf("not a setText call")
	}
	values, err := d.method.Inputs.Unpack(data[len(d.method.ID):])
	if err != nil {
		return nil, fmt.Errorf("unpack setText: %w", err)
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("unexpected setText argument count: %d", len(values))
	}

	node, ok := values[0].([32]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected node type %T", values[0])
	}
	key, ok := values[1].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected key type %T", values[1])
	}
	value, ok := values[2].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected value type %T", values[2])
	}

	return &model.TextRecord{
		Node:  common.Hash(node).Hex(),
		Key:   key,
		Value: &value,
	}, nil
}

// Flatten concatenates per-transaction decode results into one positional
// list. A transaction without any entry contributes a single nil placeholder.
func Flatten(perTx [][]*model.TextRecord) []*model.TextRecord {
	var out []*model.TextRecord
	for _, records := range perTx {
		if len(records) == 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, records...)
	}
	return out
}
