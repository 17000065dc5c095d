package orders

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewOrderKeepsItemsVerbatim(t *testing.T) {
	items := []LineItem{
		{ProductID: "p2", Size: "L", Qty: 1, Price: 20000},
		{ProductID: "p1", Size: "M", Qty: 3, Price: 15000},
	}
	shipTo := json.RawMessage(`{"address":"서울시","city":"Seoul"}`)
	contact := json.RawMessage(`{"phone":"010-0000-0000"}`)

	o := NewOrder("u1", shipTo, contact, 65000, items)

	// submitted sequence survives untouched: same order, no re-pricing
	if !reflect.DeepEqual(o.Items, items) {
		t.Fatalf("items changed:\n got %+v\nwant %+v", o.Items, items)
	}
	if o.TotalPrice != 65000 {
		t.Fatalf("total price changed: %d", o.TotalPrice)
	}
	if string(o.ShipTo) != string(shipTo) || string(o.Contact) != string(contact) {
		t.Fatal("shipTo/contact must pass through untouched")
	}
	if o.Status != StatusPreparing {
		t.Fatalf("new orders start preparing, got %s", o.Status)
	}
	if o.OrderNum == "" || o.ID == "" {
		t.Fatal("order id and number must be generated")
	}
}

func TestNewOrderEmptyItems(t *testing.T) {
	o := NewOrder("u1", nil, nil, 0, nil)
	if o.Items == nil || len(o.Items) != 0 {
		t.Fatalf("want empty non-nil items, got %#v", o.Items)
	}
}
