package contenthash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIPFS(t *testing.T) {
	hash, err := Decode("0xe3010170122029f2d17be6139079dc48696d1f582a8530eb9805b561eda517e22a892c7e3f1f")
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, "ipfs", hash.ProtocolType)
	assert.Equal(t, "QmRAQB6YaCyidP37UdDnjFY5vQuiBrcqdyoW1CuDgwxkD4", hash.Decoded)
}

func TestIPFSLocator(t *testing.T) {
	assert.Equal(t, "QmRAQB6YaCyidP37UdDnjFY5vQuiBrcqdyoW1CuDgwxkD4",
		ipfsLocator("QmRAQB6YaCyidP37UdDnjFY5vQuiBrcqdyoW1CuDgwxkD4"))
	assert.Equal(t, "QmRAQB6YaCyidP37UdDnjFY5vQuiBrcqdyoW1CuDgwxkD4",
		ipfsLocator("k2jmtxseqz46solsx2rmxavgbzp6ij1t1kiq1or8a00c2g9bx1for0gv"))
	assert.Equal(t, "not-a-cid", ipfsLocator("not-a-cid"))
}

func TestDecodeEmpty(t *testing.T) {
	hash, err := Decode("0x")
	require.NoError(t, err)
	assert.Nil(t, hash)
}

func TestDecodeMalformed(t *testing.T) {
	hash, err := Decode("0xdeadbeef")
	assert.Error(t, err)
	assert.Nil(t, hash)

	hash, err = Decode("not-hex")
	assert.Error(t, err)
	assert.Nil(t, hash)
}

func TestParseText(t *testing.T) {
	hash, err := parseText("/ipns/app.uniswap.org")
	require.NoError(t, err)
	assert.Equal(t, &ContentHash{ProtocolType: "ipns", Decoded: "app.uniswap.org"}, hash)

	hash, err = parseText("bzz://d1de9994b4d039f6548d191eb26786769f580809256b4685ef316805265ea162")
	require.NoError(t, err)
	assert.Equal(t, "bzz", hash.ProtocolType)
	assert.Equal(t, "d1de9994b4d039f6548d191eb26786769f580809256b4685ef316805265ea162", hash.Decoded)

	_, err = parseText("garbage")
	assert.Error(t, err)
}
