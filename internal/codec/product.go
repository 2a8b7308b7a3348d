package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/vmarket/storecore/internal/domain"
)

const productFieldCount = 6

// ProductCodec persists products as
// id;name;price;stockQuantity;category;description.
// Note the storage order: price before stock.
type ProductCodec struct{}

func (ProductCodec) Encode(p domain.Product) string {
	return strings.Join([]string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.StockQuantity),
		string(p.Type),
		p.Description,
	}, FieldSep)
}

func (ProductCodec) Decode(line string) (domain.Product, error) {
	parts := strings.Split(line, FieldSep)
	if len(parts) != productFieldCount {
		return domain.Product{}, fmt.Errorf("expected %d fields, got %d", productFieldCount, len(parts))
	}

	id, err := cast.ToInt64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id %q", parts[0])
	}
	price, err := cast.ToFloat64E(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product price %q", parts[2])
	}
	stock, err := cast.ToIntE(strings.TrimSpace(parts[3]))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid stock quantity %q", parts[3])
	}
	ptype, err := domain.ParseProductType(strings.TrimSpace(parts[4]))
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:            id,
		Name:          strings.TrimSpace(parts[1]),
		Price:         price,
		Type:          ptype,
		StockQuantity: stock,
		Description:   strings.TrimSpace(parts[5]),
	}, nil
}
