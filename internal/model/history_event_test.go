package model

import (
	"encoding/json"
	"testing"
)

func TestHistoryEventJSONShape(t *testing.T) {
	event := HistoryEvent{
		Type:            KindMulticoinAddrChanged,
		BlockNumber:     15000000,
		TransactionHash: "0xabc",
		ID:              "15000000-1",
		Data:            MulticoinAddrChangedData{CoinType: "999", RawAddr: "0x1234"},
	}

	b, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"type", "blockNumber", "transactionHash", "id", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %s in %s", key, b)
		}
	}

	data := decoded["data"].(map[string]interface{})
	if data["coinType"] != "999" || data["rawAddr"] != "0x1234" {
		t.Fatalf("data mismatch: %v", data)
	}
	if _, ok := data["coinName"]; ok {
		t.Fatalf("coinName should be omitted: %v", data)
	}
	if _, ok := data["addr"]; ok {
		t.Fatalf("addr should be omitted: %v", data)
	}
}

func TestOwnerDataKind(t *testing.T) {
	if (OwnerData{EventKind: KindTransfer}).Kind() != KindTransfer {
		t.Fatalf("owner data should report its kind")
	}

	b, err := json.Marshal(OwnerData{EventKind: KindNewOwner, Owner: "0x1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"owner":"0x1"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestTextChangedValueOmittedUntilJoined(t *testing.T) {
	b, err := json.Marshal(TextChangedData{Key: "url"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"key":"url"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	value := "https://ens.domains"
	b, err = json.Marshal(TextChangedData{Key: "url", Value: &value})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"key":"url","value":"https://ens.domains"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestHistoryRecords(t *testing.T) {
	h := &History{
		Name:         "parthtejpal.eth",
		Domain:       []HistoryEvent{{Type: KindNewOwner, ID: "d1"}},
		Registration: []HistoryEvent{{Type: KindNameRegistered, ID: "r1"}},
		Resolver:     []HistoryEvent{{Type: KindTextChanged, ID: "x1"}, {Type: KindAddrChanged, ID: "x2"}},
	}

	records := h.Records()
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].Family != FamilyDomain || records[1].Family != FamilyRegistration || records[3].Family != FamilyResolver {
		t.Fatalf("family mismatch: %+v", records)
	}
	if records[2].Name != "parthtejpal.eth" || records[2].Event.ID != "x1" {
		t.Fatalf("record mismatch: %+v", records[2])
	}

	var empty *History
	if empty.Records() != nil {
		t.Fatalf("nil history should have no records")
	}
}
