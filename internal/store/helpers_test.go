package store_test

import (
	"path/filepath"
	"testing"

	"github.com/vmarket/storecore/internal/codec"
	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
	"github.com/vmarket/storecore/internal/store"
)

func newProductRepo(t *testing.T, products ...domain.Product) *repository.Repository[domain.Product] {
	t.Helper()
	repo := repository.New("product", filepath.Join(t.TempDir(), "products.txt"),
		codec.ProductCodec{}, func(p domain.Product) int64 { return p.ID }, nil)
	for _, p := range products {
		repo.Save(p)
	}
	return repo
}

func newProductService(t *testing.T, products ...domain.Product) (*store.ProductService, *repository.Repository[domain.Product]) {
	t.Helper()
	repo := newProductRepo(t, products...)
	return store.NewProductService(repo, store.NewIDAllocator(repo.MaxID())), repo
}

func newClientRepo(t *testing.T, clients ...domain.Client) *repository.Repository[domain.Client] {
	t.Helper()
	repo := repository.New("client", filepath.Join(t.TempDir(), "clients.txt"),
		codec.ClientCodec{}, func(c domain.Client) int64 { return c.ID }, nil)
	for _, c := range clients {
		repo.Save(c)
	}
	return repo
}

func newOrderRepo(t *testing.T) *repository.Repository[domain.Order] {
	t.Helper()
	return repository.New("order", filepath.Join(t.TempDir(), "orders.txt"),
		codec.OrderCodec{}, func(o domain.Order) int64 { return o.ID }, nil)
}

func testClient(id int64) domain.Client {
	return domain.Client{
		ID: id,
		Credentials: domain.Credentials{
			Name:     "John Smith",
			Email:    "john.s@example.com",
			Password: "pass123",
		},
		DeliveryAddress: "123 Main St, NY",
		PhoneNumber:     "0721234567",
	}
}
