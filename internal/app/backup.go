package app

import (
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vmarket/storecore/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is a point-in-time JSON dump of every collection. It is a
// diagnostic backup beside the line-oriented files, not a second source of
// truth: nothing reads it back at startup.
type Snapshot struct {
	CreatedAt time.Time        `json:"created_at"`
	Products  []domain.Product `json:"products"`
	Clients   []domain.Client  `json:"clients"`
	Orders    []domain.Order   `json:"orders"`
}

// BackupSnapshot writes the current in-memory state of all collections to a
// single JSON file.
func (a *Application) BackupSnapshot(path string) error {
	snap := Snapshot{
		CreatedAt: time.Now(),
		Products:  a.products.FindAll(),
		Clients:   a.clients.FindAll(),
		Orders:    a.orders.FindAll(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write snapshot")
	}

	zap.L().Info("snapshot backup written",
		zap.String("file", path),
		zap.Int("products", len(snap.Products)),
		zap.Int("clients", len(snap.Clients)),
		zap.Int("orders", len(snap.Orders)))
	return nil
}
