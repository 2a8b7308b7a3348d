package store

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
)

// TopicOrderPlaced carries a domain.Order after a successful placement.
const TopicOrderPlaced = "order.placed"

// Cart maps product ids to requested quantities.
type Cart map[int64]int

// OrderService owns the order transaction: it validates a cart against live
// stock, computes the total, records the order and applies the stock
// decrements as one atomic section.
type OrderService struct {
	repo     *repository.Repository[domain.Order]
	products *ProductService
	ids      *IDAllocator
	bus      EventBus.Bus

	// placeMu keeps the whole placement — pre-check, total, allocation,
	// record, decrement — as a single section so two in-flight placements
	// cannot interleave.
	placeMu sync.Mutex
}

func NewOrderService(
	repo *repository.Repository[domain.Order],
	products *ProductService,
	ids *IDAllocator,
	bus EventBus.Bus,
) *OrderService {
	return &OrderService{repo: repo, products: products, ids: ids, bus: bus}
}

// PlaceOrder validates every cart line against current stock, computes the
// total from live unit prices, records a PENDING order and decrements stock
// for each line. All-or-nothing: any unknown product, bad quantity or stock
// shortfall fails the whole call with no order recorded and no stock
// changed.
func (s *OrderService) PlaceOrder(clientID int64, cart Cart) (domain.Order, error) {
	if len(cart) == 0 {
		return domain.Order{}, domain.Invalidf("cannot place an order with an empty cart")
	}

	s.placeMu.Lock()
	defer s.placeMu.Unlock()

	// Pre-check against live catalog state and compute the total. No stock
	// is reserved here.
	lines := make(map[int64]domain.OrderLine, len(cart))
	var total float64
	for pid, qty := range cart {
		p, ok := s.products.FindByID(pid)
		if !ok {
			return domain.Order{}, domain.Invalidf("product with id %d was not found", pid)
		}
		if qty <= 0 {
			return domain.Order{}, domain.Invalidf("requested quantity for product %q must be positive", p.Name)
		}
		if qty > p.StockQuantity {
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.StockQuantity,
				Requested:   qty,
			}
		}
		lines[pid] = domain.OrderLine{Product: p, Quantity: qty}
		total += p.Price * float64(qty)
	}

	// Apply the decrements before recording the order. The batch re-checks
	// and mutates under one lock, so a cart that no longer fits leaves
	// neither an order nor a partial reservation behind.
	if err := s.products.DecreaseStockBatch(cart); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        s.ids.Next(),
		ClientID:  clientID,
		Lines:     lines,
		CreatedAt: time.Now(),
		Status:    domain.OrderPending,
		Total:     total,
	}
	s.repo.Save(order)

	if s.bus != nil {
		s.bus.Publish(TopicOrderPlaced, order)
	}

	zap.L().Info("order placed",
		zap.Int64("id", order.ID),
		zap.Int64("client_id", clientID),
		zap.Int("lines", len(lines)),
		zap.Float64("total", total))
	return order, nil
}

// FindByID returns the order with the given id, if present.
func (s *OrderService) FindByID(id int64) (domain.Order, bool) {
	return s.repo.FindByID(id)
}

// FindAll returns all recorded orders.
func (s *OrderService) FindAll() []domain.Order {
	return s.repo.FindAll()
}

// Delete removes an order; an unknown id is a validation error. Stock is
// not restored.
func (s *OrderService) Delete(id int64) error {
	if !s.repo.Delete(id) {
		return domain.Invalidf("order with id %d was not found", id)
	}
	zap.L().Info("order deleted", zap.Int64("id", id))
	return nil
}

// UpdateStatus moves an order along its lifecycle. Only the transitions
// PENDING -> PROCESSING -> SHIPPED -> DELIVERED and PENDING -> CANCELLED
// are legal.
func (s *OrderService) UpdateStatus(id int64, next domain.OrderStatus) (domain.Order, error) {
	o, ok := s.repo.FindByID(id)
	if !ok {
		return domain.Order{}, domain.Invalidf("order with id %d was not found", id)
	}
	if !o.Status.CanTransitionTo(next) {
		return o, domain.Invalidf("order %d cannot change status from %s to %s", id, o.Status, next)
	}
	o.Status = next
	s.repo.Save(o)
	zap.L().Info("order status updated", zap.Int64("id", id), zap.String("status", string(next)))
	return o, nil
}

// Cancel moves a PENDING order to CANCELLED. Stock already decremented at
// placement time is not restored.
func (s *OrderService) Cancel(id int64) (domain.Order, error) {
	return s.UpdateStatus(id, domain.OrderCancelled)
}

// UnitsSoldPerProduct folds over every recorded order and accumulates units
// sold per product display name. Names are resolved against the live
// catalog by id, never taken from the placeholder products an order carries
// after a reload; lines whose product no longer exists are skipped.
func (s *OrderService) UnitsSoldPerProduct() map[string]int {
	report := make(map[string]int)
	for _, o := range s.repo.FindAll() {
		for pid, line := range o.Lines {
			p, ok := s.products.FindByID(pid)
			if !ok {
				continue
			}
			report[p.Name] += line.Quantity
		}
	}
	return report
}

// Flush writes the order collection to its backing file.
func (s *OrderService) Flush() error {
	return s.repo.SaveAll()
}
