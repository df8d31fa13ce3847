// Package normalize flattens raw payment-provider webhook bodies into
// the insertable event row shape. The provider schema is not under our
// control, so every nested access is an optional lookup over a generic
// JSON document rather than a typed struct.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	"hookdash/internal/platform/models"
)

// ErrMalformedPayload marks bodies that fail the structural minimum:
// not a JSON object, no payment object envelope, or no charge entry.
// Missing optional fields inside the charge never trigger it.
var ErrMalformedPayload = errors.New("malformed webhook payload")

const defaultEventType = "payment_intent.succeeded"

// Normalize is a pure function of the body: the same input always
// yields the same derived fields, and RawPayload carries the input
// verbatim so every derived field can be recomputed later.
func Normalize(body []byte) (*models.EventInsert, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	intent := objectAt(doc, "object")
	if intent == nil {
		return nil, fmt.Errorf("%w: missing payment object", ErrMalformedPayload)
	}

	charge := firstCharge(intent)
	if charge == nil {
		return nil, fmt.Errorf("%w: missing charge entry", ErrMalformedPayload)
	}

	ev := &models.EventInsert{
		Type:           stringAt(doc, "type"),
		Status:         stringAt(intent, "status"),
		Amount:         intAt(intent, "amount"),
		AmountReceived: intAt(intent, "amount_received"),
		Currency:       stringAt(intent, "currency"),
		RawPayload:     json.RawMessage(append([]byte(nil), body...)),
	}
	if ev.Type == "" {
		ev.Type = defaultEventType
	}

	shipping := objectAt(charge, "shipping")
	billing := objectAt(charge, "billing_details")

	// Fallback chains: shipping contact wins over billing where both
	// exist, email only ever comes from billing.
	ev.CustomerName = firstNonEmpty(stringAt(shipping, "name"), stringAt(billing, "name"))
	ev.CustomerEmail = stringAt(billing, "email")
	ev.CustomerPhone = firstNonEmpty(stringAt(shipping, "phone"), stringAt(billing, "phone"))

	ev.ShippingName = stringAt(shipping, "name")
	ev.ShippingPhone = stringAt(shipping, "phone")

	addr := objectAt(shipping, "address")
	ev.ShippingAddressLine1 = stringAt(addr, "line1")
	ev.ShippingAddressLine2 = stringAt(addr, "line2")
	ev.ShippingAddressCity = stringAt(addr, "city")
	ev.ShippingAddressState = stringAt(addr, "state")
	ev.ShippingAddressCountry = stringAt(addr, "country")
	ev.ShippingAddressPostalCode = stringAt(addr, "postal_code")

	return ev, nil
}

func firstCharge(intent map[string]interface{}) map[string]interface{} {
	charges := objectAt(intent, "charges")
	if charges == nil {
		return nil
	}
	data, _ := charges["data"].([]interface{})
	if len(data) == 0 {
		return nil
	}
	first, _ := data[0].(map[string]interface{})
	return first
}

func objectAt(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]interface{})
	return v
}

func stringAt(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// intAt reads an integer minor-unit amount. encoding/json decodes
// numbers as float64; anything else at the path reads as absent.
func intAt(m map[string]interface{}, key string) *int64 {
	if m == nil {
		return nil
	}
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	n := int64(f)
	return &n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
