package model

// Family groups history events by the subgraph entity that emitted them.
type Family string

const (
	FamilyDomain       Family = "domain"
	FamilyRegistration Family = "registration"
	FamilyResolver     Family = "resolver"
)

// EventKind is the subgraph __typename of a history event.
type EventKind string

const (
	KindNewOwner    EventKind = "NewOwner"
	KindNewResolver EventKind = "NewResolver"
	KindTransfer    EventKind = "Transfer"
	KindNewTTL      EventKind = "NewTTL"

	KindNameRegistered  EventKind = "NameRegistered"
	KindNameRenewed     EventKind = "NameRenewed"
	KindNameTransferred EventKind = "NameTransferred"

	KindAddrChanged          EventKind = "AddrChanged"
	KindMulticoinAddrChanged EventKind = "MulticoinAddrChanged"
	KindNameChanged          EventKind = "NameChanged"
	KindAbiChanged           EventKind = "AbiChanged"
	KindPubkeyChanged        EventKind = "PubkeyChanged"
	KindTextChanged          EventKind = "TextChanged"
	KindContenthashChanged   EventKind = "ContenthashChanged"
	KindInterfaceChanged     EventKind = "InterfaceChanged"
	KindAuthorisationChanged EventKind = "AuthorisationChanged"
)

// FamilyKinds lists the event kinds each family can report.
var FamilyKinds = map[Family][]EventKind{
	FamilyDomain:       {KindNewOwner, KindNewResolver, KindTransfer, KindNewTTL},
	FamilyRegistration: {KindNameRegistered, KindNameRenewed, KindNameTransferred},
	FamilyResolver: {
		KindAddrChanged, KindMulticoinAddrChanged, KindNameChanged, KindAbiChanged,
		KindPubkeyChanged, KindTextChanged, KindContenthashChanged, KindInterfaceChanged,
		KindAuthorisationChanged,
	},
}

// HistoryEvent is the uniform record built from one subgraph event.
type HistoryEvent struct {
	Type            EventKind `json:"type"`
	BlockNumber     uint64    `json:"blockNumber"`
	TransactionHash string    `json:"transactionHash"`
	ID              string    `json:"id"`
	Data            EventData `json:"data"`
}

// History holds the three event lists of a name.
type History struct {
	// Name is the normalised name the history was queried for.
	Name         string         `json:"-"`
	Domain       []HistoryEvent `json:"domain"`
	Registration []HistoryEvent `json:"registration"`
	Resolver     []HistoryEvent `json:"resolver"`
}

// Records flattens the history into storable records keyed by h.Name.
func (h *History) Records() []HistoryRecord {
	if h == nil {
		return nil
	}
	out := make([]HistoryRecord, 0, len(h.Domain)+len(h.Registration)+len(h.Resolver))
	for _, group := range []struct {
		family Family
		events []HistoryEvent
	}{
		{FamilyDomain, h.Domain},
		{FamilyRegistration, h.Registration},
		{FamilyResolver, h.Resolver},
	} {
		for _, event := range group.events {
			out = append(out, HistoryRecord{Name: h.Name, Family: group.family, Event: event})
		}
	}
	return out
}

// HistoryRecord is a history event tagged with its name and family for storage.
type HistoryRecord struct {
	Name   string       `json:"name"`
	Family Family       `json:"family"`
	Event  HistoryEvent `json:"event"`
}
