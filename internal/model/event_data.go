package model

import "ensScope/internal/contenthash"

// EventData is the kind-specific payload of a HistoryEvent.
type EventData interface {
	Kind() EventKind
}

// OwnerData is the payload of NewOwner and Transfer.
type OwnerData struct {
	EventKind EventKind `json:"-"`
	Owner     string    `json:"owner"`
}

func (d OwnerData) Kind() EventKind { return d.EventKind }

// NewResolverData is the payload of NewResolver.
type NewResolverData struct {
	Resolver string `json:"resolver"`
}

func (NewResolverData) Kind() EventKind { return KindNewResolver }

// NewTTLData is the payload of NewTTL.
type NewTTLData struct {
	TTL string `json:"ttl"`
}

func (NewTTLData) Kind() EventKind { return KindNewTTL }

// NameRegisteredData is the payload of NameRegistered.
type NameRegisteredData struct {
	Registrant string `json:"registrant"`
	ExpiryDate string `json:"expiryDate"`
}

func (NameRegisteredData) Kind() EventKind { return KindNameRegistered }

// NameRenewedData is the payload of NameRenewed.
type NameRenewedData struct {
	ExpiryDate string `json:"expiryDate"`
}

func (NameRenewedData) Kind() EventKind { return KindNameRenewed }

// NameTransferredData is the payload of NameTransferred.
type NameTransferredData struct {
	Owner string `json:"owner"`
}

func (NameTransferredData) Kind() EventKind { return KindNameTransferred }

// AddrChangedData is the payload of AddrChanged.
type AddrChangedData struct {
	Addr string `json:"addr"`
}

func (AddrChangedData) Kind() EventKind { return KindAddrChanged }

// MulticoinAddrChangedData is the payload of MulticoinAddrChanged. CoinName is
// empty for unregistered coin types; exactly one of Addr and RawAddr is set.
type MulticoinAddrChangedData struct {
	CoinType string `json:"coinType"`
	CoinName string `json:"coinName,omitempty"`
	Addr     string `json:"addr,omitempty"`
	RawAddr  string `json:"rawAddr,omitempty"`
}

func (MulticoinAddrChangedData) Kind() EventKind { return KindMulticoinAddrChanged }

// NameChangedData is the payload of NameChanged.
type NameChangedData struct {
	Name string `json:"name"`
}

func (NameChangedData) Kind() EventKind { return KindNameChanged }

// AbiChangedData is the payload of AbiChanged.
type AbiChangedData struct {
	ContentType string `json:"contentType"`
}

func (AbiChangedData) Kind() EventKind { return KindAbiChanged }

// PubkeyChangedData is the payload of PubkeyChanged.
type PubkeyChangedData struct {
	X string `json:"x"`
	Y string `json:"y"`
}

func (PubkeyChangedData) Kind() EventKind { return KindPubkeyChanged }

// TextChangedData is the payload of TextChanged. Value is only filled by the
// detailed history.
type TextChangedData struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

func (TextChangedData) Kind() EventKind { return KindTextChanged }

// ContenthashChangedData is the payload of ContenthashChanged. Hash is nil
// when the raw value could not be decoded.
type ContenthashChangedData struct {
	Hash *contenthash.ContentHash `json:"hash"`
}

func (ContenthashChangedData) Kind() EventKind { return KindContenthashChanged }

// InterfaceChangedData is the payload of InterfaceChanged.
type InterfaceChangedData struct {
	InterfaceID string `json:"interfaceId"`
	Implementer string `json:"implementer"`
}

func (InterfaceChangedData) Kind() EventKind { return KindInterfaceChanged }

// AuthorisationChangedData is the payload of AuthorisationChanged.
type AuthorisationChangedData struct {
	Owner        string `json:"owner"`
	Target       string `json:"target"`
	IsAuthorized bool   `json:"isAuthorized"`
}

func (AuthorisationChangedData) Kind() EventKind { return KindAuthorisationChanged }
