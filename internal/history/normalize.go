package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"ensScope/internal/coin"
	"ensScope/internal/contenthash"
	"ensScope/internal/model"
)

// NativeCoinType is the coin type the resolver also reports through AddrChanged.
const NativeCoinType = "60"

// Normalizer projects raw subgraph events into HistoryEvents.
type Normalizer struct {
	coins  *coin.Registry
	logger *zap.Logger
}

// NewNormalizer builds a Normalizer. A nil registry formats no coin types.
func NewNormalizer(coins *coin.Registry, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{coins: coins, logger: logger}
}

func newEvent(header RawEventHeader, data model.EventData) model.HistoryEvent {
	return model.HistoryEvent{
		Type:            header.Typename,
		BlockNumber:     header.BlockNumber,
		TransactionHash: header.TransactionID,
		ID:              header.ID,
		Data:            data,
	}
}

// NormalizeDomain projects domain events.
func (n *Normalizer) NormalizeDomain(events []RawDomainEvent) ([]model.HistoryEvent, error) {
	out := make([]model.HistoryEvent, 0, len(events))
	for _, event := range events {
		var data model.EventData
		switch event.Typename {
		case model.KindNewOwner, model.KindTransfer:
			if event.Owner == nil {
				return nil, missingField(event.RawEventHeader, "owner")
			}
			data = model.OwnerData{EventKind: event.Typename, Owner: event.Owner.ID}
		case model.KindNewResolver:
			if event.Resolver == nil {
				return nil, missingField(event.RawEventHeader, "resolver")
			}
			resolver, _, _ := strings.Cut(event.Resolver.ID, "-")
			data = model.NewResolverData{Resolver: resolver}
		case model.KindNewTTL:
			if event.TTL == nil {
				return nil, missingField(event.RawEventHeader, "ttl")
			}
			data = model.NewTTLData{TTL: *event.TTL}
		default:
			return nil, fmt.Errorf("%w: domain event %q", ErrUnknownEventKind, event.Typename)
		}
		out = append(out, newEvent(event.RawEventHeader, data))
	}
	return out, nil
}

// NormalizeRegistration projects registration events.
func (n *Normalizer) NormalizeRegistration(events []RawRegistrationEvent) ([]model.HistoryEvent, error) {
	out := make([]model.HistoryEvent, 0, len(events))
	for _, event := range events {
		var data model.EventData
		switch event.Typename {
		case model.KindNameRegistered:
			if event.Registrant == nil {
				return nil, missingField(event.RawEventHeader, "registrant")
			}
			data = model.NameRegisteredData{Registrant: event.Registrant.ID, ExpiryDate: deref(event.ExpiryDate)}
		case model.KindNameRenewed:
			data = model.NameRenewedData{ExpiryDate: deref(event.ExpiryDate)}
		case model.KindNameTransferred:
			if event.NewOwner == nil {
				return nil, missingField(event.RawEventHeader, "newOwner")
			}
			data = model.NameTransferredData{Owner: event.NewOwner.ID}
		default:
			return nil, fmt.Errorf("%w: registration event %q", ErrUnknownEventKind, event.Typename)
		}
		out = append(out, newEvent(event.RawEventHeader, data))
	}
	return out, nil
}

// NormalizeResolver projects resolver events. Callers drop native coin
// duplicates with DedupNativeCoin first.
func (n *Normalizer) NormalizeResolver(events []RawResolverEvent) ([]model.HistoryEvent, error) {
	out := make([]model.HistoryEvent, 0, len(events))
	for _, event := range events {
		var data model.EventData
		switch event.Typename {
		case model.KindAddrChanged:
			data = model.AddrChangedData{Addr: refID(event.Addr)}
		case model.KindMulticoinAddrChanged:
			if event.CoinType == nil {
				return nil, missingField(event.RawEventHeader, "coinType")
			}
			data = FormatMulticoin(n.coins, *event.CoinType, deref(event.Multiaddr))
		case model.KindNameChanged:
			data = model.NameChangedData{Name: deref(event.Name)}
		case model.KindAbiChanged:
			data = model.AbiChangedData{ContentType: deref(event.ContentType)}
		case model.KindPubkeyChanged:
			data = model.PubkeyChangedData{X: deref(event.X), Y: deref(event.Y)}
		case model.KindTextChanged:
			data = model.TextChangedData{Key: deref(event.Key)}
		case model.KindContenthashChanged:
			data = model.ContenthashChangedData{Hash: n.decodeContenthash(event)}
		case model.KindInterfaceChanged:
			data = model.InterfaceChangedData{InterfaceID: deref(event.InterfaceID), Implementer: deref(event.Implementer)}
		case model.KindAuthorisationChanged:
			authorized := event.IsAuthorized != nil && *event.IsAuthorized
			data = model.AuthorisationChangedData{Owner: deref(event.Owner), Target: deref(event.Target), IsAuthorized: authorized}
		default:
			return nil, fmt.Errorf("%w: resolver event %q", ErrUnknownEventKind, event.Typename)
		}
		out = append(out, newEvent(event.RawEventHeader, data))
	}
	return out, nil
}

func (n *Normalizer) decodeContenthash(event RawResolverEvent) *contenthash.ContentHash {
	hash, err := contenthash.Decode(deref(event.Hash))
	if err != nil {
		n.logger.Debug("content hash not decodable",
			zap.String("event_id", event.ID),
			zap.String("tx_hash", event.TransactionID),
			zap.Error(err),
		)
		return nil
	}
	return hash
}

// FormatMulticoin renders a MulticoinAddrChanged payload through the coin registry.
func FormatMulticoin(coins *coin.Registry, coinType, multiaddr string) model.MulticoinAddrChangedData {
	unformatted := model.MulticoinAddrChangedData{CoinType: coinType, RawAddr: multiaddr}

	parsed, err := strconv.ParseUint(coinType, 10, 64)
	if err != nil {
		return unformatted
	}
	format, ok := coins.Lookup(parsed)
	if !ok {
		return unformatted
	}

	raw, err := hexutil.Decode(multiaddr)
	if err != nil {
		return unformatted
	}
	if coin.IsZero(raw) {
		return model.MulticoinAddrChangedData{CoinType: coinType, CoinName: format.Name, RawAddr: "0x"}
	}

	addr, err := format.Encode(raw)
	if err != nil {
		return model.MulticoinAddrChangedData{CoinType: coinType, CoinName: format.Name, RawAddr: multiaddr}
	}
	return model.MulticoinAddrChangedData{CoinType: coinType, CoinName: format.Name, Addr: addr}
}

// DedupNativeCoin drops native coin MulticoinAddrChanged events that share a
// transaction with an AddrChanged event.
func DedupNativeCoin(events []RawResolverEvent) []RawResolverEvent {
	addrTxs := make(map[string]struct{})
	for _, event := range events {
		if event.Typename == model.KindAddrChanged {
			addrTxs[event.TransactionID] = struct{}{}
		}
	}

	out := make([]RawResolverEvent, 0, len(events))
	for _, event := range events {
		if event.Typename == model.KindMulticoinAddrChanged && deref(event.CoinType) == NativeCoinType {
			if _, dup := addrTxs[event.TransactionID]; dup {
				continue
			}
		}
		out = append(out, event)
	}
	return out
}
