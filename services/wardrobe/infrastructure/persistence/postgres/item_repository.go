package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/capsule/pkg/database"
	"github.com/ghuser/capsule/pkg/events"
	wardrobedomain "github.com/ghuser/capsule/services/wardrobe/domain"
	domainevents "github.com/ghuser/capsule/services/wardrobe/domain/events"
	"github.com/ghuser/capsule/services/wardrobe/domain/models"
)

const itemColumns = `id, user_id, name, brand, type, color, description, size,
	image_url_front, image_url_back, price, date_purchased, in_capsule, created_at`

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus is used to publish lifecycle events within the
// same transaction as the write (outbox pattern).
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new ClothingItem and publishes an ItemCreatedEvent within
// the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.ClothingItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO clothing_items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			item.ID, item.UserID, item.Name.String(),
			item.Brand, item.Type, item.Color, item.Description, item.Size,
			item.ImageURLFront, item.ImageURLBack,
			item.Price, item.DatePurchased, item.InCapsule, item.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: duplicate id", wardrobedomain.ErrInvalidItem)
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an item by ID scoped to the given user.
// Returns ErrItemNotFound when the row is missing or owned by someone else.
func (r *ItemRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ClothingItem, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM clothing_items
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wardrobedomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// FindByUserID retrieves all items for the given user, newest first.
func (r *ItemRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*models.ClothingItem, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM clothing_items
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Update persists the mutable detail fields of an existing item.
// Image URLs and in_capsule are deliberately absent from the SET list.
func (r *ItemRepository) Update(ctx context.Context, item *models.ClothingItem) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE clothing_items
		SET name = $3, brand = $4, type = $5, color = $6, description = $7,
			size = $8, price = $9, date_purchased = $10
		WHERE id = $1 AND user_id = $2`,
		item.ID, item.UserID, item.Name.String(),
		item.Brand, item.Type, item.Color, item.Description, item.Size,
		item.Price, item.DatePurchased,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wardrobedomain.ErrItemNotFound
	}
	return nil
}

// Delete permanently removes an item scoped to the given user and publishes
// an ItemDeletedEvent in the same transaction.
func (r *ItemRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var front, back string
		err := tx.QueryRowContext(ctx, `
			DELETE FROM clothing_items
			WHERE id = $1 AND user_id = $2
			RETURNING image_url_front, image_url_back`,
			id, userID,
		).Scan(&front, &back)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return wardrobedomain.ErrItemNotFound
			}
			return fmt.Errorf("delete item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishDeleted(tx, userID, id, front, back); err != nil {
				return fmt.Errorf("publish item deleted: %w", err)
			}
		}
		return nil
	})
}

// ToggleCapsule flips in_capsule in a single statement and returns the new
// value. Last write wins: there is no version or timestamp guard.
func (r *ItemRepository) ToggleCapsule(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var inCapsule bool
	err := r.db.DB().QueryRowContext(ctx, `
		UPDATE clothing_items
		SET in_capsule = NOT in_capsule
		WHERE id = $1 AND user_id = $2
		RETURNING in_capsule`,
		id, userID,
	).Scan(&inCapsule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, wardrobedomain.ErrItemNotFound
		}
		return false, fmt.Errorf("toggle capsule: %w", err)
	}
	return inCapsule, nil
}

func (r *ItemRepository) publishCreated(tx *sql.Tx, item *models.ClothingItem) error {
	event := domainevents.ItemCreatedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ItemID:        item.ID,
		UserID:        item.UserID,
		Name:          item.Name.String(),
		ImageURLFront: item.ImageURLFront,
		ImageURLBack:  item.ImageURLBack,
		OccurredAt:    item.CreatedAt,
	}
	return r.publishTx(tx, domainevents.TopicItemCreated, event.EventID, event)
}

func (r *ItemRepository) publishDeleted(tx *sql.Tx, userID, id uuid.UUID, front, back string) error {
	event := domainevents.ItemDeletedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ItemID:        id,
		UserID:        userID,
		ImageURLFront: front,
		ImageURLBack:  back,
		OccurredAt:    time.Now().UTC(),
	}
	return r.publishTx(tx, domainevents.TopicItemDeleted, event.EventID, event)
}

func (r *ItemRepository) publishTx(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps a clothing_items row to a domain models.ClothingItem.
func scanItem(row rowScanner) (*models.ClothingItem, error) {
	var (
		item          models.ClothingItem
		name          string
		brand         sql.NullString
		typ           sql.NullString
		color         sql.NullString
		description   sql.NullString
		size          sql.NullString
		price         sql.NullFloat64
		datePurchased sql.NullTime
	)
	err := row.Scan(
		&item.ID, &item.UserID, &name, &brand, &typ, &color, &description, &size,
		&item.ImageURLFront, &item.ImageURLBack,
		&price, &datePurchased, &item.InCapsule, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Name = models.ItemName(name)
	item.Brand = nullableString(brand)
	item.Type = nullableString(typ)
	item.Color = nullableString(color)
	item.Description = nullableString(description)
	item.Size = nullableString(size)
	if price.Valid {
		item.Price = &price.Float64
	}
	if datePurchased.Valid {
		t := datePurchased.Time
		item.DatePurchased = &t
	}
	return &item, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
