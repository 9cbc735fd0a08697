package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ovenly/pizza-agent/agent/ledger"
)

// MenuItemRow is a pizza on the menu. Variants map size names to prices.
type MenuItemRow struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID          string             `bun:"id,pk" json:"id"`
	Name        string             `bun:"name,notnull" json:"name"`
	Description string             `bun:"description" json:"description"`
	Price       float64            `bun:"price,notnull" json:"price"`
	Ingredients []string           `bun:"ingredients,array" json:"ingredients"`
	Variants    map[string]float64 `bun:"variants,type:jsonb" json:"variants"`
	Category    string             `bun:"category" json:"category"`
	Tags        []string           `bun:"tags,array" json:"tags"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,default:now()" json:"created_at"`
	UpdatedAt   time.Time          `bun:"updated_at,nullzero,default:now()" json:"updated_at"`
}

// OrderRow persists a ledger order. Items and tracking are stored as JSONB.
type OrderRow struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID         string                 `bun:"order_id,pk"`
	UserID          string                 `bun:"user_id,notnull"`
	Items           []ledger.Item          `bun:"items,type:jsonb"`
	Total           float64                `bun:"total,notnull"`
	Status          ledger.Status          `bun:"status,notnull"`
	DeliveryAddress string                 `bun:"delivery_address"`
	Tracking        []ledger.TrackingEvent `bun:"tracking,type:jsonb"`
	CreatedAt       time.Time              `bun:"created_at,notnull"`
	UpdatedAt       time.Time              `bun:"updated_at,notnull"`
}

// KBDocumentRow holds one knowledge base passage for retrieval.
type KBDocumentRow struct {
	bun.BaseModel `bun:"table:kb_documents"`

	ID       string `bun:"id,pk"`
	Title    string `bun:"title"`
	Category string `bun:"category"`
	Text     string `bun:"text,notnull"`
}

// ProcessedMessageRow records an inbound webhook message that has already
// been handled, keyed by the provider message id. The stored reply lets
// duplicate deliveries be answered without re-running the agent.
type ProcessedMessageRow struct {
	bun.BaseModel `bun:"table:processed_messages"`

	MessageSID  string    `bun:"message_sid,pk"`
	UserID      string    `bun:"user_id,notnull"`
	Reply       string    `bun:"reply"`
	ProcessedAt time.Time `bun:"processed_at,notnull"`
}
