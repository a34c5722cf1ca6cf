package resolver

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensScope/internal/model"
)

var testNode = common.HexToHash("0x8ff1d4a1cf4e8a5e6c8a1b6b4a7f6a9c6e9dfb5e0f26f1b4f6b3c5a7e1d2c3b4")

func packSetText(t *testing.T, key, value string) []byte {
	t.Helper()
	parsed, err := PublicResolverABI()
	require.NoError(t, err)
	data, err := parsed.Pack("setText", [32]byte(testNode), key, value)
	require.NoError(t, err)
	return data
}

func packMulticall(t *testing.T, calls ...[]byte) []byte {
	t.Helper()
	parsed, err := PublicResolverABI()
	require.NoError(t, err)
	data, err := parsed.Pack("multicall", calls)
	require.NoError(t, err)
	return data
}

func TestDecodeDirectSetText(t *testing.T) {
	decoder, err := NewTextCallDecoder()
	require.NoError(t, err)

	input := packSetText(t, "url", "https://ens.domains")

	payloads := Payloads(input)
	require.Len(t, payloads, 1)
	assert.Equal(t, 0, payloads[0].Offset)
	assert.Len(t, payloads[0].Data, len(input))

	records := decoder.Decode(input)
	require.Len(t, records, 1)
	require.NotNil(t, records[0])
	assert.Equal(t, "url", records[0].Key)
	require.NotNil(t, records[0].Value)
	assert.Equal(t, "https://ens.domains", *records[0].Value)
	assert.Equal(t, testNode.Hex(), records[0].Node)
}

func TestDecodeMulticallSetText(t *testing.T) {
	decoder, err := NewTextCallDecoder()
	require.NoError(t, err)

	first := packSetText(t, "email", "test@ens.domains")
	second := packSetText(t, "description", "")
	input := packMulticall(t, first, second)

	payloads := Payloads(input)
	require.Len(t, payloads, 2)
	for i, want := range [][]byte{first, second} {
		offset := payloads[i].Offset
		require.Greater(t, offset, 0)
		length := new(big.Int).SetBytes(input[offset-32 : offset])
		assert.Equal(t, int64(len(want)), length.Int64())
		assert.Equal(t, want, payloads[i].Data)
	}
	assert.Less(t, payloads[0].Offset, payloads[1].Offset)

	records := decoder.Decode(input)
	require.Len(t, records, 2)
	assert.Equal(t, "email", records[0].Key)
	assert.Equal(t, "test@ens.domains", *records[0].Value)
	assert.Equal(t, "description", records[1].Key)
	require.NotNil(t, records[1].Value)
	assert.Equal(t, "", *records[1].Value)
}

func TestDecodeMulticallWithOtherCalls(t *testing.T) {
	decoder, err := NewTextCallDecoder()
	require.NoError(t, err)

	parsed, err := PublicResolverABI()
	require.NoError(t, err)
	setAddr, err := parsed.Pack("setAddr", [32]byte(testNode), common.HexToAddress("0x1111111111111111111111111111111111111111"))
	require.NoError(t, err)

	input := packMulticall(t, setAddr, packSetText(t, "avatar", "eip155:1/erc721:0xabc/1"))

	records := decoder.Decode(input)
	require.Len(t, records, 1)
	assert.Equal(t, "avatar", records[0].Key)
}

func TestDecodeBrokenPayloadYieldsHole(t *testing.T) {
	decoder, err := NewTextCallDecoder()
	require.NoError(t, err)

	// a selector with nothing decodable behind it
	input := append(make([]byte, 40), SetTextSelector...)
	input = append(input, 0x01, 0x02)

	records := decoder.Decode(input)
	require.Len(t, records, 1)
	assert.Nil(t, records[0])

	// a selector too close to the start to carry a length word
	short := append([]byte{0xaa, 0xbb}, SetTextSelector...)
	payloads := Payloads(short)
	require.Len(t, payloads, 1)
	assert.Nil(t, payloads[0].Data)
	assert.Equal(t, []*model.TextRecord{nil}, decoder.Decode(short))
}

func TestDecodeNoSelector(t *testing.T) {
	decoder, err := NewTextCallDecoder()
	require.NoError(t, err)

	assert.Empty(t, decoder.Decode([]byte{0xde, 0xad, 0xbe, 0xef}))
	assert.Empty(t, decoder.Decode(nil))
}

func TestSelectorOffsets(t *testing.T) {
	input := []byte{0x10, 0xf1, 0x3a, 0x8c, 0x00, 0x10, 0xf1, 0x3a, 0x8c}
	assert.Equal(t, []int{0, 5}, SelectorOffsets(input, SetTextSelector))
	assert.Nil(t, SelectorOffsets(input, nil))
}

func TestFlatten(t *testing.T) {
	value := "v"
	a := &model.TextRecord{Key: "a", Value: &value}
	b := &model.TextRecord{Key: "b", Value: &value}

	got := Flatten([][]*model.TextRecord{{a, nil}, {}, {b}})
	assert.Equal(t, []*model.TextRecord{a, nil, nil, b}, got)
}
