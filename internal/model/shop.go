// internal/model/shop.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Brand struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
}

type ShopCategory struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
}

type Product struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	BrandID     uuid.UUID `db:"shop_brand_id"`
	Name        string    `db:"name"`
	SKU         string    `db:"sku"`
	Price       int64     `db:"price"` // cents
	Qty         int       `db:"qty"`
}

type Customer struct {
	ID          uuid.UUID  `db:"id"`
	WorkspaceID uuid.UUID  `db:"workspace_id"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	Phone       string     `db:"phone"`
	Birthday    *time.Time `db:"birthday"`
}

type Address struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Street      string    `db:"street"`
	City        string    `db:"city"`
	Zip         string    `db:"zip"`
	Country     string    `db:"country"`
}

// OrderStatus values mirror the fulfilment pipeline; payments exist only for
// orders at or past processing.
const (
	OrderNew        = "new"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	CustomerID  uuid.UUID `db:"shop_customer_id"`
	Number      string    `db:"number"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

type OrderItem struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	OrderID     uuid.UUID `db:"shop_order_id"`
	ProductID   uuid.UUID `db:"shop_product_id"`
	Qty         int       `db:"qty"`
	UnitPrice   int64     `db:"unit_price"`
}

type Payment struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	OrderID     uuid.UUID `db:"shop_order_id"`
	Amount      int64     `db:"amount"`
	Provider    string    `db:"provider"`
	Method      string    `db:"method"`
}
