package license

import (
	"context"
	"fmt"

	"github.com/ppiankov/douessay/internal/model"
)

// Open returns the store selected by config
func Open(ctx context.Context, cfg model.LicenseConfig) (Registry, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLStore(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("unsupported license driver: %s", cfg.Driver)
}
