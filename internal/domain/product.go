package domain

import "fmt"

// ProductType classifies a catalog product.
type ProductType string

const (
	ProductElectronic ProductType = "ELECTRONIC"
	ProductBooks      ProductType = "BOOKS"
	ProductClothing   ProductType = "CLOTHING"
)

// ParseProductType converts a stored symbol back to a ProductType.
func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(s); t {
	case ProductElectronic, ProductBooks, ProductClothing:
		return t, nil
	default:
		return "", fmt.Errorf("unknown product type %q", s)
	}
}

// Product represents a catalog item. Identity is the ID; two products with
// the same ID refer to the same catalog entry regardless of the other fields.
type Product struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	Type          ProductType `json:"type"`
	StockQuantity int         `json:"stock_quantity"`
	Description   string      `json:"description"`
}
