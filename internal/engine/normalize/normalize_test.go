package normalize

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

const fullPayload = `{
	"type": "payment_intent.succeeded",
	"object": {
		"id": "pi_1",
		"status": "succeeded",
		"amount": 2500,
		"amount_received": 2500,
		"currency": "usd",
		"charges": {
			"data": [{
				"id": "ch_1",
				"shipping": {
					"name": "Ship Name",
					"phone": "+15550001111",
					"address": {
						"line1": "1 Main St",
						"city": "Springfield",
						"state": "IL",
						"country": "US",
						"postal_code": "62701"
					}
				},
				"billing_details": {
					"name": "Bill Name",
					"email": "bill@example.com",
					"phone": "+15550002222"
				}
			}]
		}
	}
}`

const billingOnlyPayload = `{
	"object": {
		"status": "succeeded",
		"amount": 900,
		"currency": "eur",
		"charges": {
			"data": [{
				"billing_details": {
					"email": "only@example.com",
					"phone": "+15550009999"
				}
			}]
		}
	}
}`

func TestNormalize_ShippingTakesPrecedence(t *testing.T) {
	ev, err := Normalize([]byte(fullPayload))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ev.CustomerName != "Ship Name" {
		t.Errorf("Expected shipping name to win, got %q", ev.CustomerName)
	}
	if ev.CustomerEmail != "bill@example.com" {
		t.Errorf("Expected billing email, got %q", ev.CustomerEmail)
	}
	if ev.CustomerPhone != "+15550001111" {
		t.Errorf("Expected shipping phone to win, got %q", ev.CustomerPhone)
	}
	if ev.Status != "succeeded" || ev.Currency != "usd" {
		t.Errorf("Unexpected intent fields: status=%q currency=%q", ev.Status, ev.Currency)
	}
	if ev.Amount == nil || *ev.Amount != 2500 {
		t.Errorf("Expected amount 2500, got %v", ev.Amount)
	}
	if ev.AmountReceived == nil || *ev.AmountReceived != 2500 {
		t.Errorf("Expected amount_received 2500, got %v", ev.AmountReceived)
	}
	if ev.ShippingAddressCity != "Springfield" || ev.ShippingAddressPostalCode != "62701" {
		t.Errorf("Unexpected shipping address: %q %q", ev.ShippingAddressCity, ev.ShippingAddressPostalCode)
	}
}

func TestNormalize_BillingFallback(t *testing.T) {
	ev, err := Normalize([]byte(billingOnlyPayload))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ev.CustomerName != "" {
		t.Errorf("Expected absent customer name, got %q", ev.CustomerName)
	}
	if ev.CustomerPhone != "+15550009999" {
		t.Errorf("Expected billing phone fallback, got %q", ev.CustomerPhone)
	}
	if ev.CustomerEmail != "only@example.com" {
		t.Errorf("Expected billing email, got %q", ev.CustomerEmail)
	}
	if ev.Type != defaultEventType {
		t.Errorf("Expected default type, got %q", ev.Type)
	}
	if ev.AmountReceived != nil {
		t.Errorf("Expected absent amount_received, got %v", *ev.AmountReceived)
	}
}

func TestNormalize_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{}"`},
		{"not an object", `[1,2,3]`},
		{"missing payment object", `{"type":"payment_intent.succeeded"}`},
		{"payment object wrong type", `{"object":"nope"}`},
		{"missing charges", `{"object":{"status":"succeeded"}}`},
		{"empty charge list", `{"object":{"charges":{"data":[]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.body))
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("Expected ErrMalformedPayload, got %v", err)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	first, err := Normalize([]byte(fullPayload))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Normalize([]byte(fullPayload))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input")
	}
	if !bytes.Equal(first.RawPayload, []byte(fullPayload)) {
		t.Error("Expected raw payload preserved verbatim")
	}
}
