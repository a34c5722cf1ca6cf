package history

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ensScope/internal/coin"
	"ensScope/internal/model"
	"ensScope/internal/resolver"
)

type fakeIndexer struct {
	data      []byte
	err       error
	variables map[string]interface{}
	queries   int
}

func (f *fakeIndexer) Query(_ context.Context, _ string, variables map[string]interface{}) ([]byte, error) {
	f.queries++
	f.variables = variables
	return f.data, f.err
}

type fakeTxs struct {
	inputs  map[string][]byte
	batches [][]string
	err     error
}

func (f *fakeTxs) TransactionInput(_ context.Context, hash string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	input, ok := f.inputs[hash]
	return input, ok, nil
}

func (f *fakeTxs) BatchTransactionInputs(_ context.Context, hashes []string) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, hashes)
	out := make([][]byte, 0, len(hashes))
	for _, hash := range hashes {
		out = append(out, f.inputs[hash])
	}
	return out, nil
}

func seededIndexer(t *testing.T) *fakeIndexer {
	t.Helper()
	data, err := os.ReadFile("testdata/history_response.json")
	require.NoError(t, err)
	return &fakeIndexer{data: data}
}

func packCall(t *testing.T, method string, args ...interface{}) []byte {
	t.Helper()
	parsed, err := resolver.PublicResolverABI()
	require.NoError(t, err)
	data, err := parsed.Pack(method, args...)
	require.NoError(t, err)
	return data
}

var node = [32]byte(common.HexToHash("0x8ff1d4a1cf4e8a5e6c8a1b6b4a7f6a9c6e9dfb5e0f26f1b4f6b3c5a7e1d2c3b4"))

func newTestService(t *testing.T, indexer Indexer, txs TransactionSource) *Service {
	t.Helper()
	svc, err := NewService(indexer, txs, coin.DefaultRegistry(), nil)
	require.NoError(t, err)
	return svc
}

func TestHistory(t *testing.T) {
	indexer := seededIndexer(t)
	svc := newTestService(t, indexer, nil)

	h, err := svc.History(context.Background(), "parthtejpal.eth")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "parthtejpal.eth", indexer.variables["name"])
	assert.Equal(t, "parthtejpal", indexer.variables["label"])

	require.Len(t, h.Domain, 4)
	require.Len(t, h.Registration, 3)
	require.Len(t, h.Resolver, 11)

	for _, events := range [][]model.HistoryEvent{h.Domain, h.Registration, h.Resolver} {
		for _, event := range events {
			assert.NotEmpty(t, event.Type)
			assert.NotZero(t, event.BlockNumber)
			assert.NotEmpty(t, event.TransactionHash)
			assert.NotEmpty(t, event.ID)
			require.NotNil(t, event.Data)
			assert.Equal(t, event.Type, event.Data.Kind())
		}
	}

	assert.Equal(t, model.NewResolverData{Resolver: "0x231b0ee14048e9dccd1d247744d114a4eb5e8e63"}, h.Domain[1].Data)
	assert.Equal(t, model.NameRegisteredData{
		Registrant: "0x1111111111111111111111111111111111111111",
		ExpiryDate: "1700000000",
	}, h.Registration[0].Data)

	// the coin type 60 duplicate of the AddrChanged event is gone
	assert.Equal(t, model.KindAddrChanged, h.Resolver[0].Type)
	assert.Equal(t, model.MulticoinAddrChangedData{
		CoinType: "0",
		CoinName: "BTC",
		Addr:     "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
	}, h.Resolver[1].Data)
	for _, event := range h.Resolver {
		if data, ok := event.Data.(model.MulticoinAddrChangedData); ok {
			assert.NotEqual(t, NativeCoinType, data.CoinType)
		}
	}

	assert.Equal(t, model.TextChangedData{Key: "url"}, h.Resolver[2].Data)
	assert.Nil(t, h.Resolver[5].Data.(model.ContenthashChangedData).Hash)
	assert.Equal(t, model.AuthorisationChangedData{
		Owner:        "0x1111111111111111111111111111111111111111",
		Target:       "0x4444444444444444444444444444444444444444",
		IsAuthorized: true,
	}, h.Resolver[10].Data)
}

func TestHistoryKeysRecordsByNormalisedName(t *testing.T) {
	indexer := seededIndexer(t)
	svc := newTestService(t, indexer, nil)

	h, err := svc.History(context.Background(), "ParthTejpal.eth")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "parthtejpal.eth", indexer.variables["name"])
	assert.Equal(t, "parthtejpal.eth", h.Name)
	for _, record := range h.Records() {
		assert.Equal(t, "parthtejpal.eth", record.Name)
	}
}

func TestHistoryInvalidName(t *testing.T) {
	indexer := seededIndexer(t)
	svc := newTestService(t, indexer, nil)

	_, err := svc.History(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Zero(t, indexer.queries)
}

func TestNormaliseName(t *testing.T) {
	name, err := NormaliseName("Nick.ETH")
	require.NoError(t, err)
	assert.Equal(t, "nick.eth", name)
}

func TestHistoryNoDomain(t *testing.T) {
	svc := newTestService(t, &fakeIndexer{data: []byte(`{"domains": []}`)}, nil)

	h, err := svc.History(context.Background(), "missing.eth")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestHistoryQueryError(t *testing.T) {
	boom := errors.New("boom")
	svc := newTestService(t, &fakeIndexer{err: boom}, nil)

	_, err := svc.History(context.Background(), "parthtejpal.eth")
	assert.ErrorIs(t, err, boom)
}

func TestHistoryWithDetail(t *testing.T) {
	txs := &fakeTxs{inputs: map[string][]byte{
		"0xb1": packCall(t, "multicall", [][]byte{
			packCall(t, "setText", node, "url", "https://ens.domains"),
			packCall(t, "setText", node, "email", "hello@ens.domains"),
		}),
		"0xb2": packCall(t, "setText", node, "avatar", "ipfs://avatar"),
	}}
	svc := newTestService(t, seededIndexer(t), txs)

	h, err := svc.HistoryWithDetail(context.Background(), "parthtejpal.eth")
	require.NoError(t, err)
	require.NotNil(t, h)

	require.Len(t, txs.batches, 1)
	assert.Equal(t, []string{"0xb1", "0xb2"}, txs.batches[0])

	values := map[string]string{}
	for _, event := range h.Resolver {
		if event.Type != model.KindTextChanged {
			continue
		}
		data := event.Data.(model.TextChangedData)
		require.NotNil(t, data.Value, data.Key)
		values[data.Key] = *data.Value
	}
	assert.Equal(t, map[string]string{
		"url":    "https://ens.domains",
		"email":  "hello@ens.domains",
		"avatar": "ipfs://avatar",
	}, values)
	assert.Len(t, h.Domain, 4)
	assert.Len(t, h.Registration, 3)
}

func TestHistoryWithDetailMissingDecode(t *testing.T) {
	txs := &fakeTxs{inputs: map[string][]byte{
		"0xb1": packCall(t, "setText", node, "url", "https://ens.domains"),
	}}
	svc := newTestService(t, seededIndexer(t), txs)

	h, err := svc.HistoryWithDetail(context.Background(), "parthtejpal.eth")
	require.NoError(t, err)

	var got []*string
	for _, event := range h.Resolver {
		if event.Type == model.KindTextChanged {
			got = append(got, event.Data.(model.TextChangedData).Value)
		}
	}
	require.Len(t, got, 3)
	require.NotNil(t, got[0])
	assert.Equal(t, "https://ens.domains", *got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
}

func TestHistoryWithDetailFetchError(t *testing.T) {
	boom := errors.New("rpc down")
	svc := newTestService(t, seededIndexer(t), &fakeTxs{err: boom})

	_, err := svc.HistoryWithDetail(context.Background(), "parthtejpal.eth")
	assert.ErrorIs(t, err, boom)
}

func TestTransactionTextRecords(t *testing.T) {
	txs := &fakeTxs{inputs: map[string][]byte{
		"0x01": packCall(t, "multicall", [][]byte{
			packCall(t, "setText", node, "url", "https://ens.domains"),
			packCall(t, "setText", node, "", "orphan"),
			packCall(t, "setText", node, "description", ""),
		}),
		"0x02": {0xde, 0xad, 0xbe, 0xef},
	}}
	svc := newTestService(t, nil, txs)
	ctx := context.Background()

	records, err := svc.TransactionTextRecords(ctx, "0x01")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "url", records[0].Key)
	assert.Equal(t, "https://ens.domains", *records[0].Value)
	assert.Nil(t, records[1])
	require.NotNil(t, records[2].Value)
	assert.Equal(t, "", *records[2].Value)

	record, err := svc.TransactionTextRecord(ctx, "0x01", 2)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "description", record.Key)

	record, err = svc.TransactionTextRecord(ctx, "0x01", 1)
	require.NoError(t, err)
	assert.Nil(t, record)

	record, err = svc.TransactionTextRecord(ctx, "0x01", 5)
	require.NoError(t, err)
	assert.Nil(t, record)

	record, err = svc.TransactionTextRecord(ctx, "0x01", -1)
	require.NoError(t, err)
	assert.Nil(t, record)

	records, err = svc.TransactionTextRecords(ctx, "0x02")
	require.NoError(t, err)
	assert.Nil(t, records)

	records, err = svc.TransactionTextRecords(ctx, "0xmissing")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestTransactionTextRecordsProviderError(t *testing.T) {
	boom := errors.New("rpc down")
	svc := newTestService(t, nil, &fakeTxs{err: boom})

	_, err := svc.TransactionTextRecords(context.Background(), "0x01")
	assert.ErrorIs(t, err, boom)
}
