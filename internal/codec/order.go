package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/vmarket/storecore/internal/domain"
)

const orderFieldCount = 6

// OrderCodec persists orders as
// id;clientId;pid:qty|pid:qty;timestamp;STATUS;total.
//
// The product map field is lossy on purpose: only the product id and the
// quantity are written. Decoding rebuilds each line with a placeholder
// product (same id, zero price, empty metadata); anything needing real
// product attributes must resolve the id against the live catalog.
type OrderCodec struct{}

func (OrderCodec) Encode(o domain.Order) string {
	return strings.Join([]string{
		strconv.FormatInt(o.ID, 10),
		strconv.FormatInt(o.ClientID, 10),
		encodeLines(o.Lines),
		o.CreatedAt.Format(TimeLayout),
		string(o.Status),
		strconv.FormatFloat(o.Total, 'f', -1, 64),
	}, FieldSep)
}

func (OrderCodec) Decode(line string) (domain.Order, error) {
	parts := strings.Split(line, FieldSep)
	if len(parts) != orderFieldCount {
		return domain.Order{}, fmt.Errorf("expected %d fields, got %d", orderFieldCount, len(parts))
	}

	id, err := cast.ToInt64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order id %q", parts[0])
	}
	clientID, err := cast.ToInt64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid client id %q", parts[1])
	}
	lines, err := decodeLines(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Order{}, err
	}
	createdAt, err := time.Parse(TimeLayout, strings.TrimSpace(parts[3]))
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order timestamp %q", parts[3])
	}
	status, err := domain.ParseOrderStatus(strings.TrimSpace(parts[4]))
	if err != nil {
		return domain.Order{}, err
	}
	total, err := cast.ToFloat64E(strings.TrimSpace(parts[5]))
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order total %q", parts[5])
	}

	return domain.Order{
		ID:        id,
		ClientID:  clientID,
		Lines:     lines,
		CreatedAt: createdAt,
		Status:    status,
		Total:     total,
	}, nil
}

// encodeLines renders the product map as pid:qty pairs joined by PairSep.
// Pairs are written in ascending product id order so repeated saves of the
// same state produce identical files.
func encodeLines(lines map[int64]domain.OrderLine) string {
	if len(lines) == 0 {
		return ""
	}
	ids := make([]int64, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pairs := make([]string, 0, len(ids))
	for _, id := range ids {
		pairs = append(pairs, strconv.FormatInt(id, 10)+KVSep+strconv.Itoa(lines[id].Quantity))
	}
	return strings.Join(pairs, PairSep)
}

func decodeLines(cell string) (map[int64]domain.OrderLine, error) {
	lines := make(map[int64]domain.OrderLine)
	if cell == "" {
		return lines, nil
	}
	for _, pair := range strings.Split(cell, PairSep) {
		kv := strings.Split(pair, KVSep)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid product pair %q", pair)
		}
		pid, err := cast.ToInt64E(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q in pair %q", kv[0], pair)
		}
		qty, err := cast.ToIntE(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q in pair %q", kv[1], pair)
		}
		if pid <= 0 {
			// Written by older builds with a broken catalog reference;
			// the pair carries no usable identity, so it is dropped.
			continue
		}
		lines[pid] = domain.OrderLine{
			Product:  domain.Product{ID: pid},
			Quantity: qty,
		}
	}
	return lines, nil
}
