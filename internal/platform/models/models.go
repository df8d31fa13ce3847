package models

import "encoding/json"

// WebhookEvent is one persisted provider notification. The flattened
// columns are derived from RawPayload by the normalizer and act as a
// display cache; RawPayload remains the source of truth and is never
// rewritten after insert.
type WebhookEvent struct {
	ID                        string          `json:"id"`
	Type                      string          `json:"type"`
	Status                    string          `json:"status,omitempty"`
	Amount                    *int64          `json:"amount,omitempty"`
	AmountReceived            *int64          `json:"amount_received,omitempty"`
	Currency                  string          `json:"currency,omitempty"`
	CustomerName              string          `json:"customer_name,omitempty"`
	CustomerEmail             string          `json:"customer_email,omitempty"`
	CustomerPhone             string          `json:"customer_phone,omitempty"`
	ShippingName              string          `json:"shipping_name,omitempty"`
	ShippingPhone             string          `json:"shipping_phone,omitempty"`
	ShippingAddressLine1      string          `json:"shipping_address_line1,omitempty"`
	ShippingAddressLine2      string          `json:"shipping_address_line2,omitempty"`
	ShippingAddressCity       string          `json:"shipping_address_city,omitempty"`
	ShippingAddressState      string          `json:"shipping_address_state,omitempty"`
	ShippingAddressCountry    string          `json:"shipping_address_country,omitempty"`
	ShippingAddressPostalCode string          `json:"shipping_address_postal_code,omitempty"`
	RawPayload                json.RawMessage `json:"raw_payload,omitempty"`
	CreatedAt                 int64           `json:"created_at"` // unix millis, assigned by the store
}

// EventInsert is the normalizer output: everything except the fields
// the persistence layer assigns (id, created_at).
type EventInsert struct {
	Type                      string          `json:"type"`
	Status                    string          `json:"status,omitempty"`
	Amount                    *int64          `json:"amount,omitempty"`
	AmountReceived            *int64          `json:"amount_received,omitempty"`
	Currency                  string          `json:"currency,omitempty"`
	CustomerName              string          `json:"customer_name,omitempty"`
	CustomerEmail             string          `json:"customer_email,omitempty"`
	CustomerPhone             string          `json:"customer_phone,omitempty"`
	ShippingName              string          `json:"shipping_name,omitempty"`
	ShippingPhone             string          `json:"shipping_phone,omitempty"`
	ShippingAddressLine1      string          `json:"shipping_address_line1,omitempty"`
	ShippingAddressLine2      string          `json:"shipping_address_line2,omitempty"`
	ShippingAddressCity       string          `json:"shipping_address_city,omitempty"`
	ShippingAddressState      string          `json:"shipping_address_state,omitempty"`
	ShippingAddressCountry    string          `json:"shipping_address_country,omitempty"`
	ShippingAddressPostalCode string          `json:"shipping_address_postal_code,omitempty"`
	RawPayload                json.RawMessage `json:"raw_payload"`
}

// StatSnapshot is an aggregation checkpoint written by the stats
// worker, keyed on the window start.
type StatSnapshot struct {
	ID          string  `json:"id"`
	WindowStart int64   `json:"window_start"` // unix millis
	WindowEnd   int64   `json:"window_end"`   // unix millis
	Total       int     `json:"total"`
	DeltaPct    float64 `json:"delta_pct"`
	CreatedAt   int64   `json:"created_at"`
}
