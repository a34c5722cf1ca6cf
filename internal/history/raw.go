package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"ensScope/internal/model"
)

var (
	// ErrUnknownEventKind is returned for a __typename outside its family.
	ErrUnknownEventKind = errors.New("unknown event kind")
	// ErrUnexpectedShape is returned when the subgraph response does not match the query.
	ErrUnexpectedShape = errors.New("unexpected subgraph response shape")
	// ErrInvalidName is returned for a name that cannot be normalised.
	ErrInvalidName = errors.New("invalid name")
)

// EntityRef is a nested `{ id }` selection.
type EntityRef struct {
	ID string `json:"id"`
}

// RawEventHeader holds the fields shared by every event selection.
type RawEventHeader struct {
	ID            string          `json:"id"`
	BlockNumber   uint64          `json:"blockNumber"`
	TransactionID string          `json:"transactionID"`
	Typename      model.EventKind `json:"__typename"`
}

// RawDomainEvent is one entry of domains.events.
type RawDomainEvent struct {
	RawEventHeader
	Owner    *EntityRef `json:"owner"`
	Resolver *EntityRef `json:"resolver"`
	TTL      *string    `json:"ttl"`
}

// RawRegistrationEvent is one entry of owner.registrations.events.
type RawRegistrationEvent struct {
	RawEventHeader
	Registrant *EntityRef `json:"registrant"`
	ExpiryDate *string    `json:"expiryDate"`
	NewOwner   *EntityRef `json:"newOwner"`
}

// RawResolverEvent is one entry of resolver.events.
type RawResolverEvent struct {
	RawEventHeader
	Addr         *EntityRef `json:"addr"`
	CoinType     *string    `json:"coinType"`
	Multiaddr    *string    `json:"multiaddr"`
	Name         *string    `json:"name"`
	ContentType  *string    `json:"contentType"`
	X            *string    `json:"x"`
	Y            *string    `json:"y"`
	Key          *string    `json:"key"`
	Hash         *string    `json:"hash"`
	InterfaceID  *string    `json:"interfaceID"`
	Implementer  *string    `json:"implementer"`
	Owner        *string    `json:"owner"`
	Target       *string    `json:"target"`
	IsAuthorized *bool      `json:"isAuthorized"`
}

// RawDomain is one entry of the domains selection.
type RawDomain struct {
	Events []RawDomainEvent `json:"events"`
	Owner  *struct {
		Registrations []struct {
			Events []RawRegistrationEvent `json:"events"`
		} `json:"registrations"`
	} `json:"owner"`
	Resolver *struct {
		Events []RawResolverEvent `json:"events"`
	} `json:"resolver"`
}

// RawResponse is the data payload of the history query.
type RawResponse struct {
	Domains []RawDomain `json:"domains"`
}

// ParseResponse decodes the query data. It returns nil when no domain matched.
func ParseResponse(data []byte) (*RawDomain, error) {
	var resp RawResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if len(resp.Domains) == 0 {
		return nil, nil
	}
	if len(resp.Domains) > 1 {
		return nil, fmt.Errorf("%w: %d domains", ErrUnexpectedShape, len(resp.Domains))
	}

	domain := resp.Domains[0]
	if domain.Owner == nil {
		return nil, fmt.Errorf("%w: domain without owner", ErrUnexpectedShape)
	}
	if len(domain.Owner.Registrations) != 1 {
		return nil, fmt.Errorf("%w: %d registrations", ErrUnexpectedShape, len(domain.Owner.Registrations))
	}
	return &domain, nil
}

// RegistrationEvents returns the events of the single matched registration.
func (d *RawDomain) RegistrationEvents() []RawRegistrationEvent {
	if d.Owner == nil || len(d.Owner.Registrations) == 0 {
		return nil
	}
	return d.Owner.Registrations[0].Events
}

// ResolverEvents returns the resolver events, empty when the domain has no resolver.
func (d *RawDomain) ResolverEvents() []RawResolverEvent {
	if d.Resolver == nil {
		return nil
	}
	return d.Resolver.Events
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func refID(ref *EntityRef) string {
	if ref == nil {
		return ""
	}
	return ref.ID
}

func missingField(header RawEventHeader, field string) error {
	return fmt.Errorf("%w: %s event %s missing %s", ErrUnexpectedShape, header.Typename, header.ID, field)
}
