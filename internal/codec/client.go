package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/vmarket/storecore/internal/domain"
)

const clientFieldCount = 6

// ClientCodec persists clients as
// id;name;email;password;deliveryAddress;phoneNumber.
// The order history is session state and is intentionally not written.
type ClientCodec struct{}

func (ClientCodec) Encode(c domain.Client) string {
	return strings.Join([]string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.Email,
		c.Password,
		c.DeliveryAddress,
		c.PhoneNumber,
	}, FieldSep)
}

func (ClientCodec) Decode(line string) (domain.Client, error) {
	parts := strings.Split(line, FieldSep)
	if len(parts) != clientFieldCount {
		return domain.Client{}, fmt.Errorf("expected %d fields, got %d", clientFieldCount, len(parts))
	}

	id, err := cast.ToInt64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Client{}, fmt.Errorf("invalid client id %q", parts[0])
	}

	return domain.Client{
		ID: id,
		Credentials: domain.Credentials{
			Name:     strings.TrimSpace(parts[1]),
			Email:    strings.TrimSpace(parts[2]),
			Password: parts[3],
		},
		DeliveryAddress: strings.TrimSpace(parts[4]),
		PhoneNumber:     strings.TrimSpace(parts[5]),
	}, nil
}
