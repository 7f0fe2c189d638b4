// internal/storage/seed.go
//
// Transaction-scoped insert helpers used by the seeder. Every helper takes
// the seeder's transaction so one demo instance is created atomically, and
// every row carries an explicit workspace ID.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"demo-pool/internal/model"
)

func (s *Storage) InsertAccount(tx *sql.Tx, a *model.DemoAccount) error {
	_, err := tx.Exec(`
		INSERT INTO demo_accounts (id, email, password_hash, name, state, leased_at, last_leased_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, a.ID, a.Email, a.PasswordHash, a.Name, a.State, a.LeasedAt, a.LastLeasedAt)
	if err != nil {
		return fmt.Errorf("insert account %s: %w", a.Email, err)
	}
	return nil
}

func (s *Storage) InsertWorkspace(tx *sql.Tx, w *model.Workspace) error {
	_, err := tx.Exec(`INSERT INTO workspaces (id, name, created_at) VALUES ($1, $2, NOW())`, w.ID, w.Name)
	if err != nil {
		return fmt.Errorf("insert workspace %s: %w", w.Name, err)
	}
	return nil
}

func (s *Storage) AttachWorkspace(tx *sql.Tx, accountID, workspaceID uuid.UUID, role string) error {
	_, err := tx.Exec(`
		INSERT INTO account_workspaces (account_id, workspace_id, role) VALUES ($1, $2, $3)
	`, accountID, workspaceID, role)
	if err != nil {
		return fmt.Errorf("attach workspace: %w", err)
	}
	return nil
}

func (s *Storage) InsertBrand(tx *sql.Tx, b *model.Brand) error {
	_, err := tx.Exec(`INSERT INTO shop_brands (id, workspace_id, name) VALUES ($1, $2, $3)`,
		b.ID, b.WorkspaceID, b.Name)
	return err
}

func (s *Storage) InsertShopCategory(tx *sql.Tx, c *model.ShopCategory) error {
	_, err := tx.Exec(`INSERT INTO shop_categories (id, workspace_id, name) VALUES ($1, $2, $3)`,
		c.ID, c.WorkspaceID, c.Name)
	return err
}

func (s *Storage) InsertProduct(tx *sql.Tx, p *model.Product) error {
	_, err := tx.Exec(`
		INSERT INTO shop_products (id, workspace_id, shop_brand_id, name, sku, price, qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.WorkspaceID, p.BrandID, p.Name, p.SKU, p.Price, p.Qty)
	return err
}

func (s *Storage) AttachProductCategory(tx *sql.Tx, productID, categoryID uuid.UUID) error {
	_, err := tx.Exec(`
		INSERT INTO product_categories (shop_product_id, shop_category_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING
	`, productID, categoryID)
	return err
}

func (s *Storage) InsertCustomer(tx *sql.Tx, c *model.Customer) error {
	_, err := tx.Exec(`
		INSERT INTO shop_customers (id, workspace_id, name, email, phone, birthday)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.WorkspaceID, c.Name, c.Email, c.Phone, c.Birthday)
	return err
}

func (s *Storage) InsertAddress(tx *sql.Tx, a *model.Address) error {
	_, err := tx.Exec(`
		INSERT INTO addresses (id, workspace_id, street, city, zip, country)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.WorkspaceID, a.Street, a.City, a.Zip, a.Country)
	return err
}

func (s *Storage) AttachCustomerAddress(tx *sql.Tx, customerID, addressID uuid.UUID) error {
	_, err := tx.Exec(`
		INSERT INTO customer_addresses (shop_customer_id, address_id) VALUES ($1, $2)
	`, customerID, addressID)
	return err
}

func (s *Storage) InsertOrder(tx *sql.Tx, o *model.Order) error {
	_, err := tx.Exec(`
		INSERT INTO shop_orders (id, workspace_id, shop_customer_id, number, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.WorkspaceID, o.CustomerID, o.Number, o.Status, o.CreatedAt)
	return err
}

func (s *Storage) InsertOrderItem(tx *sql.Tx, i *model.OrderItem) error {
	_, err := tx.Exec(`
		INSERT INTO shop_order_items (id, workspace_id, shop_order_id, shop_product_id, qty, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, i.ID, i.WorkspaceID, i.OrderID, i.ProductID, i.Qty, i.UnitPrice)
	return err
}

func (s *Storage) InsertPayment(tx *sql.Tx, p *model.Payment) error {
	_, err := tx.Exec(`
		INSERT INTO shop_payments (id, workspace_id, shop_order_id, amount, provider, method)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.WorkspaceID, p.OrderID, p.Amount, p.Provider, p.Method)
	return err
}

func (s *Storage) InsertAuthor(tx *sql.Tx, a *model.Author) error {
	_, err := tx.Exec(`INSERT INTO blog_authors (id, workspace_id, name, email) VALUES ($1, $2, $3, $4)`,
		a.ID, a.WorkspaceID, a.Name, a.Email)
	return err
}

func (s *Storage) InsertBlogCategory(tx *sql.Tx, c *model.BlogCategory) error {
	_, err := tx.Exec(`INSERT INTO blog_categories (id, workspace_id, name) VALUES ($1, $2, $3)`,
		c.ID, c.WorkspaceID, c.Name)
	return err
}

func (s *Storage) InsertPost(tx *sql.Tx, p *model.Post) error {
	_, err := tx.Exec(`
		INSERT INTO blog_posts (id, workspace_id, blog_author_id, blog_category_id, title, body, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.WorkspaceID, p.AuthorID, p.CategoryID, p.Title, p.Body, p.PublishedAt)
	return err
}

func (s *Storage) InsertComment(tx *sql.Tx, c *model.Comment) error {
	_, err := tx.Exec(`
		INSERT INTO blog_comments (id, workspace_id, blog_post_id, author_name, body)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.WorkspaceID, c.PostID, c.AuthorName, c.Body)
	return err
}

func (s *Storage) InsertLink(tx *sql.Tx, l *model.Link) error {
	_, err := tx.Exec(`INSERT INTO blog_links (id, workspace_id, title, url) VALUES ($1, $2, $3, $4)`,
		l.ID, l.WorkspaceID, l.Title, l.URL)
	return err
}

func (s *Storage) InsertCustomReport(tx *sql.Tx, r *model.CustomReport) error {
	_, err := tx.Exec(`
		INSERT INTO custom_reports (id, workspace_id, name, data_model, columns, filters, sorts, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, r.ID, r.WorkspaceID, r.Name, r.DataModel, r.Columns, r.Filters, r.Sorts, r.Settings)
	if err != nil {
		return fmt.Errorf("insert custom report %s: %w", r.Name, err)
	}
	return nil
}
