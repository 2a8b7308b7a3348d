package store

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
)

// ProductService owns validation and stock mutation for the product catalog.
type ProductService struct {
	repo *repository.Repository[domain.Product]
	ids  *IDAllocator

	// stockMu serializes every stock read-modify-write so that a batch of
	// decrements is one atomic section: either every line of a cart applies
	// or none does.
	stockMu sync.Mutex
}

func NewProductService(repo *repository.Repository[domain.Product], ids *IDAllocator) *ProductService {
	return &ProductService{repo: repo, ids: ids}
}

// SaveOrUpdate validates a product and upserts it. A non-positive incoming
// id marks a new product and gets a freshly allocated identity; a positive
// id is treated as an update and kept.
func (s *ProductService) SaveOrUpdate(p domain.Product) (domain.Product, error) {
	if p.Price <= 0 {
		return p, domain.Invalidf("price for product %q must be strictly positive", p.Name)
	}
	if len(strings.TrimSpace(p.Name)) < 3 {
		return p, domain.Invalidf("product name must have at least 3 characters")
	}
	if p.StockQuantity < 0 {
		return p, domain.Invalidf("stock quantity cannot be negative for product %q", p.Name)
	}

	if p.ID <= 0 {
		p.ID = s.ids.Next()
	}
	s.repo.Save(p)
	zap.L().Info("product saved",
		zap.Int64("id", p.ID),
		zap.String("name", p.Name),
		zap.Int("stock", p.StockQuantity))
	return p, nil
}

// FindByID returns the product with the given id, if present.
func (s *ProductService) FindByID(id int64) (domain.Product, bool) {
	return s.repo.FindByID(id)
}

// FindAll returns all catalog products.
func (s *ProductService) FindAll() []domain.Product {
	return s.repo.FindAll()
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(id int64) error {
	if !s.repo.Delete(id) {
		return domain.Invalidf("product with id %d was not found", id)
	}
	return nil
}

// DecreaseStock removes quantity units from one product's stock. The stock
// stays untouched when the product is unknown or the quantity exceeds what
// is available.
func (s *ProductService) DecreaseStock(productID int64, quantity int) error {
	return s.DecreaseStockBatch(map[int64]int{productID: quantity})
}

// DecreaseStockBatch verifies and applies a set of stock decrements as one
// atomic section. Any unknown product, non-positive quantity or stock
// shortfall fails the whole batch before any stock changes.
func (s *ProductService) DecreaseStockBatch(quantities map[int64]int) error {
	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	resolved := make(map[int64]domain.Product, len(quantities))
	for pid, qty := range quantities {
		p, ok := s.repo.FindByID(pid)
		if !ok {
			return domain.Invalidf("product with id %d was not found", pid)
		}
		if qty <= 0 {
			return domain.Invalidf("requested quantity for product %q must be positive", p.Name)
		}
		if qty > p.StockQuantity {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.StockQuantity,
				Requested:   qty,
			}
		}
		resolved[pid] = p
	}

	for pid, qty := range quantities {
		p := resolved[pid]
		p.StockQuantity -= qty
		s.repo.Save(p)
		zap.L().Debug("stock decreased",
			zap.Int64("product_id", pid),
			zap.Int("quantity", qty),
			zap.Int("remaining", p.StockQuantity))
	}
	return nil
}

// TotalStockValue sums price times stock quantity over the whole catalog.
func (s *ProductService) TotalStockValue() float64 {
	var total float64
	for _, p := range s.repo.FindAll() {
		total += p.Price * float64(p.StockQuantity)
	}
	return total
}

// Flush writes the catalog to its backing file.
func (s *ProductService) Flush() error {
	return s.repo.SaveAll()
}
