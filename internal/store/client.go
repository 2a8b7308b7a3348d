package store

import (
	"regexp"
	"strings"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
)

var phonePattern = regexp.MustCompile(`^\d{10,}$`)

// ClientService owns validation, registration and authentication for
// clients, and keeps each client's informational order history up to date by
// listening for placed orders on the event bus.
type ClientService struct {
	repo *repository.Repository[domain.Client]
	ids  *IDAllocator
}

func NewClientService(repo *repository.Repository[domain.Client], ids *IDAllocator) *ClientService {
	return &ClientService{repo: repo, ids: ids}
}

// SubscribeOrderEvents registers the order-history listener on the bus.
func (s *ClientService) SubscribeOrderEvents(bus EventBus.Bus) error {
	return bus.Subscribe(TopicOrderPlaced, s.onOrderPlaced)
}

func (s *ClientService) onOrderPlaced(o domain.Order) {
	c, ok := s.repo.FindByID(o.ClientID)
	if !ok {
		// Orders do not enforce a foreign key; an unknown client just
		// leaves no history entry.
		return
	}
	c.OrderHistory = append(c.OrderHistory, o.ID)
	s.repo.Save(c)
}

// SaveOrUpdate validates a client and upserts it, allocating a fresh id for
// new registrations (incoming id <= 0).
func (s *ClientService) SaveOrUpdate(c domain.Client) (domain.Client, error) {
	if len(strings.TrimSpace(c.Name)) < 3 {
		return c, domain.Invalidf("client name must have at least 3 characters")
	}
	if !strings.Contains(c.Email, "@") || !strings.Contains(c.Email, ".") {
		return c, domain.Invalidf("client email is invalid: must contain '@' and '.'")
	}
	if len(c.Password) < 6 {
		return c, domain.Invalidf("client password must be at least 6 characters long")
	}
	if !phonePattern.MatchString(c.PhoneNumber) {
		return c, domain.Invalidf("client phone number must have at least 10 digits")
	}

	if c.ID <= 0 {
		c.ID = s.ids.Next()
	}
	s.repo.Save(c)
	zap.L().Info("client saved", zap.Int64("id", c.ID), zap.String("email", c.Email))
	return c, nil
}

// FindByID returns the client with the given id, if present.
func (s *ClientService) FindByID(id int64) (domain.Client, bool) {
	return s.repo.FindByID(id)
}

// FindAll returns all registered clients.
func (s *ClientService) FindAll() []domain.Client {
	return s.repo.FindAll()
}

// Delete removes a client; an unknown id is a validation error.
func (s *ClientService) Delete(id int64) error {
	if !s.repo.Delete(id) {
		return domain.Invalidf("client with id %d was not found", id)
	}
	return nil
}

// Authenticate matches credentials against the registered clients: email
// case-insensitively, password exactly. Passwords are compared in clear
// text because that is what the persisted format carries; see DESIGN.md.
func (s *ClientService) Authenticate(email, password string) (domain.Client, bool) {
	for _, c := range s.repo.FindAll() {
		if strings.EqualFold(c.Email, email) && c.Password == password {
			return c, true
		}
	}
	return domain.Client{}, false
}

// Flush writes the client collection to its backing file.
func (s *ClientService) Flush() error {
	return s.repo.SaveAll()
}
