// internal/seeder/seeder.go
package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"demo-pool/internal/config"
	"demo-pool/internal/metrics"
	"demo-pool/internal/model"
	"demo-pool/internal/storage"
)

// Seeder materializes complete demo instances: one account, one workspace,
// and a full dataset scoped to that workspace. It is the only component that
// creates demo accounts and workspaces.
type Seeder struct {
	store        *storage.Storage
	cfg          config.SeedConfig
	domain       string
	passwordHash string
	log          *zap.Logger
}

// New builds a Seeder. The shared demo password is hashed once here rather
// than per instance.
func New(store *storage.Storage, cfg *config.Config, log *zap.Logger) (*Seeder, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &Seeder{
		store:        store,
		cfg:          cfg.Seed,
		domain:       cfg.Demo.Domain,
		passwordHash: string(hash),
		log:          log,
	}, nil
}

// Seed creates n demo instances and returns how many were committed. Each
// instance is one transaction; a failure rolls back only that instance and
// aborts the batch with the iteration index wrapped into the error. Callers
// decide whether to retry.
func (s *Seeder) Seed(ctx context.Context, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("seed count must be positive, got %d", n)
	}
	for i := 0; i < n; i++ {
		start := time.Now()
		if _, err := s.seedInstance(ctx, model.StateAvailable); err != nil {
			return i, fmt.Errorf("seed instance %d: %w", i, err)
		}
		metrics.SeededTotal.Inc()
		metrics.SeedDuration.Observe(time.Since(start).Seconds())
	}
	return n, nil
}

// SeedLeased creates one demo instance that is already leased to the caller.
// Insert and lease happen in the same transaction, so a concurrent acquirer
// can never claim the instance between creation and hand-off.
func (s *Seeder) SeedLeased(ctx context.Context) (*model.DemoAccount, error) {
	start := time.Now()
	account, err := s.seedInstance(ctx, model.StateActive)
	if err != nil {
		return nil, fmt.Errorf("seed leased instance: %w", err)
	}
	metrics.SeededTotal.Inc()
	metrics.SeedDuration.Observe(time.Since(start).Seconds())
	return account, nil
}

func (s *Seeder) seedInstance(ctx context.Context, state model.LeaseState) (*model.DemoAccount, error) {
	tx, err := s.store.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	account := &model.DemoAccount{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("demo_%s@%s", randString(10), s.domain),
		PasswordHash: s.passwordHash,
		Name:         "Demo User",
		State:        state,
	}
	if state == model.StateActive {
		now := time.Now().UTC()
		account.LeasedAt = &now
		account.LastLeasedAt = &now
	}
	if err := s.store.InsertAccount(tx, account); err != nil {
		return nil, err
	}

	workspace := &model.Workspace{
		ID:   uuid.New(),
		Name: pick(companyNames),
	}
	if err := s.store.InsertWorkspace(tx, workspace); err != nil {
		return nil, err
	}
	if err := s.store.AttachWorkspace(tx, account.ID, workspace.ID, model.RoleOwner); err != nil {
		return nil, err
	}

	if err := s.seedShop(tx, workspace.ID); err != nil {
		return nil, fmt.Errorf("shop data: %w", err)
	}
	if err := s.seedBlog(tx, workspace.ID); err != nil {
		return nil, fmt.Errorf("blog data: %w", err)
	}
	if err := s.seedReports(tx, workspace.ID); err != nil {
		return nil, fmt.Errorf("report data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Debug("seeded demo instance",
		zap.String("email", account.Email),
		zap.String("workspace", workspace.ID.String()))
	return account, nil
}

func (s *Seeder) seedShop(tx *sql.Tx, wsID uuid.UUID) error {
	brands := make([]*model.Brand, s.cfg.Shop.Brands)
	for i := range brands {
		brands[i] = &model.Brand{ID: uuid.New(), WorkspaceID: wsID, Name: brandNames[i%len(brandNames)]}
		if err := s.store.InsertBrand(tx, brands[i]); err != nil {
			return err
		}
	}

	categories := make([]*model.ShopCategory, s.cfg.Shop.Categories)
	for i := range categories {
		categories[i] = &model.ShopCategory{ID: uuid.New(), WorkspaceID: wsID, Name: shopCategories[i%len(shopCategories)]}
		if err := s.store.InsertShopCategory(tx, categories[i]); err != nil {
			return err
		}
	}

	products := make([]*model.Product, s.cfg.Shop.Products)
	for i := range products {
		products[i] = &model.Product{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			BrandID:     pick(brands).ID,
			Name:        productName(),
			SKU:         fmt.Sprintf("SKU-%s", randString(6)),
			Price:       int64(500 + rand.Intn(49500)), // 5.00 to 500.00
			Qty:         rand.Intn(200),
		}
		if err := s.store.InsertProduct(tx, products[i]); err != nil {
			return err
		}
		for _, c := range sample(categories, 1+rand.Intn(3)) {
			if err := s.store.AttachProductCategory(tx, products[i].ID, c.ID); err != nil {
				return err
			}
		}
	}

	customers := make([]*model.Customer, s.cfg.Shop.Customers)
	for i := range customers {
		customers[i] = randomCustomer(wsID)
		if err := s.store.InsertCustomer(tx, customers[i]); err != nil {
			return err
		}
		for j := 0; j < 1+rand.Intn(3); j++ {
			addr := randomAddress(wsID)
			if err := s.store.InsertAddress(tx, addr); err != nil {
				return err
			}
			if err := s.store.AttachCustomerAddress(tx, customers[i].ID, addr.ID); err != nil {
				return err
			}
		}
	}

	for i := 0; i < s.cfg.Shop.Orders; i++ {
		order := &model.Order{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			CustomerID:  pick(customers).ID,
			Number:      fmt.Sprintf("OR-%06d", rand.Intn(1000000)),
			Status:      pick(orderStatuses),
			CreatedAt:   time.Now().UTC().AddDate(0, 0, -rand.Intn(60)),
		}
		if err := s.store.InsertOrder(tx, order); err != nil {
			return err
		}

		var total int64
		for _, p := range sample(products, 1+rand.Intn(5)) {
			item := &model.OrderItem{
				ID:          uuid.New(),
				WorkspaceID: wsID,
				OrderID:     order.ID,
				ProductID:   p.ID,
				Qty:         1 + rand.Intn(3),
				UnitPrice:   p.Price,
			}
			if err := s.store.InsertOrderItem(tx, item); err != nil {
				return err
			}
			total += int64(item.Qty) * item.UnitPrice
		}

		if paidStatus(order.Status) {
			payment := &model.Payment{
				ID:          uuid.New(),
				WorkspaceID: wsID,
				OrderID:     order.ID,
				Amount:      total,
				Provider:    pick(paymentProviders),
				Method:      pick(paymentMethods),
			}
			if err := s.store.InsertPayment(tx, payment); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Seeder) seedBlog(tx *sql.Tx, wsID uuid.UUID) error {
	authors := make([]*model.Author, s.cfg.Blog.Authors)
	for i := range authors {
		name := fmt.Sprintf("%s %s", pick(firstNames), pick(lastNames))
		authors[i] = &model.Author{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			Name:        name,
			Email:       fmt.Sprintf("author%d@%s", i+1, "example.net"),
		}
		if err := s.store.InsertAuthor(tx, authors[i]); err != nil {
			return err
		}
	}

	categories := make([]*model.BlogCategory, s.cfg.Blog.Categories)
	for i := range categories {
		categories[i] = &model.BlogCategory{ID: uuid.New(), WorkspaceID: wsID, Name: blogCategories[i%len(blogCategories)]}
		if err := s.store.InsertBlogCategory(tx, categories[i]); err != nil {
			return err
		}
	}

	for i := 0; i < s.cfg.Blog.Posts; i++ {
		published := time.Now().UTC().AddDate(0, 0, -rand.Intn(120))
		post := &model.Post{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			AuthorID:    pick(authors).ID,
			CategoryID:  pick(categories).ID,
			Title:       postTitle(),
			Body:        loremBody(),
			PublishedAt: &published,
		}
		if err := s.store.InsertPost(tx, post); err != nil {
			return err
		}
		for j := 0; j < rand.Intn(s.cfg.Blog.CommentsPerPost+1); j++ {
			comment := &model.Comment{
				ID:          uuid.New(),
				WorkspaceID: wsID,
				PostID:      post.ID,
				AuthorName:  fmt.Sprintf("%s %s", pick(firstNames), pick(lastNames)),
				Body:        pick(commentBodies),
			}
			if err := s.store.InsertComment(tx, comment); err != nil {
				return err
			}
		}
	}

	for i := 0; i < s.cfg.Blog.Links; i++ {
		link := &model.Link{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			Title:       pick(linkTitles),
			URL:         fmt.Sprintf("https://example.org/%s", randString(8)),
		}
		if err := s.store.InsertLink(tx, link); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedReports(tx *sql.Tx, wsID uuid.UUID) error {
	defs, err := reportDefinitions(wsID)
	if err != nil {
		return err
	}
	n := s.cfg.Reports
	if n > len(defs) {
		n = len(defs)
	}
	for _, r := range defs[:n] {
		if err := s.store.InsertCustomReport(tx, r); err != nil {
			return err
		}
	}
	return nil
}

func paidStatus(status string) bool {
	switch status {
	case model.OrderProcessing, model.OrderShipped, model.OrderDelivered:
		return true
	}
	return false
}
