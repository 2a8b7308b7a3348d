package app

import "github.com/vmarket/storecore/internal/domain"

// Bootstrap rows loaded when a backing file is absent or empty. IDs are
// fixed so the identity allocators seed deterministically on first run.

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Laptop Basic", Price: 3200, Type: domain.ProductElectronic, StockQuantity: 10, Description: "Entry-level work laptop."},
		{ID: 2, Name: "Clean Architecture", Price: 65.5, Type: domain.ProductBooks, StockQuantity: 25, Description: "Software design handbook."},
		{ID: 3, Name: "Casual Shirt", Price: 150, Type: domain.ProductClothing, StockQuantity: 20, Description: "100% cotton."},
	}
}

func defaultClients() []domain.Client {
	return []domain.Client{
		{
			ID: 1,
			Credentials: domain.Credentials{
				Name:     "John Smith",
				Email:    "john.s@example.com",
				Password: "pass123",
			},
			DeliveryAddress: "123 Main St, NY",
			PhoneNumber:     "0721234567",
		},
		{
			ID: 2,
			Credentials: domain.Credentials{
				Name:     "Jane Doe",
				Email:    "jane.d@example.com",
				Password: "pass456",
			},
			DeliveryAddress: "45 Oak Ave, CA",
			PhoneNumber:     "0739876543",
		},
	}
}
