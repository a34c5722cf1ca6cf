package history

import (
	"context"
	"fmt"

	ens "github.com/wealdtech/go-ens/v3"
	"go.uber.org/zap"

	"ensScope/internal/coin"
	"ensScope/internal/model"
	"ensScope/internal/resolver"
)

// Indexer executes a GraphQL query and returns its raw data payload.
type Indexer interface {
	Query(ctx context.Context, query string, variables map[string]interface{}) ([]byte, error)
}

// TransactionSource fetches transaction input data from a JSON-RPC provider.
type TransactionSource interface {
	// TransactionInput reports found=false for an unknown hash.
	TransactionInput(ctx context.Context, hash string) (input []byte, found bool, err error)
	// BatchTransactionInputs fetches all hashes in one round trip; results
	// follow the order of hashes and are nil for unknown transactions.
	BatchTransactionInputs(ctx context.Context, hashes []string) ([][]byte, error)
}

// Service reconstructs name histories and decodes text record transactions.
type Service struct {
	indexer    Indexer
	txs        TransactionSource
	normalizer *Normalizer
	decoder    *resolver.TextCallDecoder
	logger     *zap.Logger
}

// NewService builds a Service. txs may be nil when only History is used.
func NewService(indexer Indexer, txs TransactionSource, coins *coin.Registry, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	decoder, err := resolver.NewTextCallDecoder()
	if err != nil {
		return nil, err
	}
	return &Service{
		indexer:    indexer,
		txs:        txs,
		normalizer: NewNormalizer(coins, logger),
		decoder:    decoder,
		logger:     logger,
	}, nil
}

// NormaliseName returns the UTS-46 normalised form of name used for queries
// and storage keys.
func NormaliseName(name string) (string, error) {
	normalized, err := ens.NormaliseDomain(name)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidName, name, err)
	}
	if normalized == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	return normalized, nil
}

// History returns the event history of name, or nil if the subgraph has no such domain.
func (s *Service) History(ctx context.Context, name string) (*model.History, error) {
	if s.indexer == nil {
		return nil, fmt.Errorf("indexer is nil")
	}

	normalized, err := NormaliseName(name)
	if err != nil {
		return nil, err
	}
	label, err := ens.DomainPart(normalized, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: label of %q: %w", ErrInvalidName, normalized, err)
	}

	data, err := s.indexer.Query(ctx, Query, map[string]interface{}{
		"name":  normalized,
		"label": label,
	})
	if err != nil {
		return nil, fmt.Errorf("query subgraph: %w", err)
	}

	domain, err := ParseResponse(data)
	if err != nil {
		return nil, err
	}
	if domain == nil {
		s.logger.Debug("domain not found", zap.String("name", normalized))
		return nil, nil
	}

	domainHistory, err := s.normalizer.NormalizeDomain(domain.Events)
	if err != nil {
		return nil, err
	}
	registrationHistory, err := s.normalizer.NormalizeRegistration(domain.RegistrationEvents())
	if err != nil {
		return nil, err
	}
	resolverHistory, err := s.normalizer.NormalizeResolver(DedupNativeCoin(domain.ResolverEvents()))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("history loaded",
		zap.String("name", normalized),
		zap.Int("domain_events", len(domainHistory)),
		zap.Int("registration_events", len(registrationHistory)),
		zap.Int("resolver_events", len(resolverHistory)),
	)

	return &model.History{
		Name:         normalized,
		Domain:       domainHistory,
		Registration: registrationHistory,
		Resolver:     resolverHistory,
	}, nil
}

// HistoryWithDetail returns History with the written value joined onto every
// TextChanged event.
func (s *Service) HistoryWithDetail(ctx context.Context, name string) (*model.History, error) {
	if s.txs == nil {
		return nil, fmt.Errorf("transaction source is nil")
	}

	h, err := s.History(ctx, name)
	if err != nil || h == nil {
		return h, err
	}

	var textEvents []int
	var hashes []string
	seen := make(map[string]struct{})
	for i, event := range h.Resolver {
		if event.Type != model.KindTextChanged {
			continue
		}
		textEvents = append(textEvents, i)
		if _, ok := seen[event.TransactionHash]; ok {
			continue
		}
		seen[event.TransactionHash] = struct{}{}
		hashes = append(hashes, event.TransactionHash)
	}
	if len(textEvents) == 0 {
		return h, nil
	}

	inputs, err := s.txs.BatchTransactionInputs(ctx, hashes)
	if err != nil {
		return nil, fmt.Errorf("fetch text transactions: %w", err)
	}
	if len(inputs) != len(hashes) {
		return nil, fmt.Errorf("fetch text transactions: expected %d results, got %d", len(hashes), len(inputs))
	}

	perTx := make([][]*model.TextRecord, 0, len(inputs))
	for _, input := range inputs {
		perTx = append(perTx, s.decoder.Decode(input))
	}
	decoded := resolver.Flatten(perTx)

	resolverHistory := make([]model.HistoryEvent, len(h.Resolver))
	copy(resolverHistory, h.Resolver)
	for pos, idx := range textEvents {
		event := resolverHistory[idx]
		data, _ := event.Data.(model.TextChangedData)
		if pos < len(decoded) && decoded[pos] != nil {
			data.Value = decoded[pos].Value
		}
		event.Data = data
		resolverHistory[idx] = event
	}

	s.logger.Debug("text values joined",
		zap.String("name", name),
		zap.Int("text_events", len(textEvents)),
		zap.Int("transactions", len(hashes)),
		zap.Int("decoded", len(decoded)),
	)

	return &model.History{
		Name:         h.Name,
		Domain:       h.Domain,
		Registration: h.Registration,
		Resolver:     resolverHistory,
	}, nil
}

// TransactionTextRecords decodes every setText call of a transaction. Entries
// without a key are nil. It returns nil for an unknown transaction or one
// without setText calls.
func (s *Service) TransactionTextRecords(ctx context.Context, hash string) ([]*model.TextRecord, error) {
	records, err := s.transactionRecords(ctx, hash)
	if err != nil || records == nil {
		return nil, err
	}

	out := make([]*model.TextRecord, 0, len(records))
	for _, record := range records {
		if record == nil || record.Key == "" {
			out = append(out, nil)
			continue
		}
		out = append(out, &model.TextRecord{Node: record.Node, Key: record.Key, Value: record.Value})
	}
	return out, nil
}

// TransactionTextRecord returns the index-th setText call of a transaction, or
// nil when the index is out of range or the entry is unusable.
func (s *Service) TransactionTextRecord(ctx context.Context, hash string, index int) (*model.TextRecord, error) {
	records, err := s.transactionRecords(ctx, hash)
	if err != nil || records == nil {
		return nil, err
	}
	if index < 0 || index >= len(records) {
		return nil, nil
	}

	record := records[index]
	if record == nil || record.Key == "" || record.Value == nil {
		return nil, nil
	}
	return &model.TextRecord{Node: record.Node, Key: record.Key, Value: record.Value}, nil
}

func (s *Service) transactionRecords(ctx context.Context, hash string) ([]*model.TextRecord, error) {
	if s.txs == nil {
		return nil, fmt.Errorf("transaction source is nil")
	}

	input, found, err := s.txs.TransactionInput(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", hash, err)
	}
	if !found {
		s.logger.Debug("transaction not found", zap.String("tx_hash", hash))
		return nil, nil
	}

	records := s.decoder.Decode(input)
	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}
