package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"hookdash/internal/platform/models"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, type, status, amount, amount_received, currency,
	customer_name, customer_email, customer_phone,
	shipping_name, shipping_phone, shipping_address_line1, shipping_address_line2,
	shipping_address_city, shipping_address_state, shipping_address_country,
	shipping_address_postal_code, raw_payload, created_at`

// Insert writes one row, assigning id and created_at here and nowhere
// else. One attempt; the caller sees any driver error untouched.
func (r *EventRepository) Insert(ins *models.EventInsert) (*models.WebhookEvent, error) {
	ev := &models.WebhookEvent{
		ID:                        "evt_" + uuid.New().String(),
		Type:                      ins.Type,
		Status:                    ins.Status,
		Amount:                    ins.Amount,
		AmountReceived:            ins.AmountReceived,
		Currency:                  ins.Currency,
		CustomerName:              ins.CustomerName,
		CustomerEmail:             ins.CustomerEmail,
		CustomerPhone:             ins.CustomerPhone,
		ShippingName:              ins.ShippingName,
		ShippingPhone:             ins.ShippingPhone,
		ShippingAddressLine1:      ins.ShippingAddressLine1,
		ShippingAddressLine2:      ins.ShippingAddressLine2,
		ShippingAddressCity:       ins.ShippingAddressCity,
		ShippingAddressState:      ins.ShippingAddressState,
		ShippingAddressCountry:    ins.ShippingAddressCountry,
		ShippingAddressPostalCode: ins.ShippingAddressPostalCode,
		RawPayload:                ins.RawPayload,
		CreatedAt:                 time.Now().UnixMilli(),
	}

	query := `
		INSERT INTO webhook_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		ev.ID, ev.Type, nullString(ev.Status), nullInt(ev.Amount), nullInt(ev.AmountReceived),
		nullString(ev.Currency), nullString(ev.CustomerName), nullString(ev.CustomerEmail),
		nullString(ev.CustomerPhone), nullString(ev.ShippingName), nullString(ev.ShippingPhone),
		nullString(ev.ShippingAddressLine1), nullString(ev.ShippingAddressLine2),
		nullString(ev.ShippingAddressCity), nullString(ev.ShippingAddressState),
		nullString(ev.ShippingAddressCountry), nullString(ev.ShippingAddressPostalCode),
		string(ev.RawPayload), ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *EventRepository) GetByID(id string) (*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE id = ?`
	return scanEvent(r.db.QueryRow(query, id))
}

// List returns a page ordered newest first, matching the dashboard's
// display order.
func (r *EventRepository) List(limit, offset int) ([]*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListAll is the dashboard's initial bulk fetch, newest first.
func (r *EventRepository) ListAll() ([]*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListSince(ts int64) ([]*models.WebhookEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE created_at >= ? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, ts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM webhook_events`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.WebhookEvent, error) {
	var ev models.WebhookEvent
	var status, currency, custName, custEmail, custPhone sql.NullString
	var shipName, shipPhone, line1, line2, city, state, country, postal sql.NullString
	var amount, amountReceived sql.NullInt64
	var rawPayload string

	err := row.Scan(&ev.ID, &ev.Type, &status, &amount, &amountReceived, &currency,
		&custName, &custEmail, &custPhone,
		&shipName, &shipPhone, &line1, &line2,
		&city, &state, &country, &postal,
		&rawPayload, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}

	ev.Status = status.String
	ev.Currency = currency.String
	ev.CustomerName = custName.String
	ev.CustomerEmail = custEmail.String
	ev.CustomerPhone = custPhone.String
	ev.ShippingName = shipName.String
	ev.ShippingPhone = shipPhone.String
	ev.ShippingAddressLine1 = line1.String
	ev.ShippingAddressLine2 = line2.String
	ev.ShippingAddressCity = city.String
	ev.ShippingAddressState = state.String
	ev.ShippingAddressCountry = country.String
	ev.ShippingAddressPostalCode = postal.String
	ev.RawPayload = []byte(rawPayload)
	if amount.Valid {
		ev.Amount = &amount.Int64
	}
	if amountReceived.Valid {
		ev.AmountReceived = &amountReceived.Int64
	}
	return &ev, nil
}

func collectEvents(rows *sql.Rows) ([]*models.WebhookEvent, error) {
	var events []*models.WebhookEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}
