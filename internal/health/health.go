// Package health serves the service health report.
package health

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v5"
	"go.uber.org/zap"
)

// RootChecker is the part of the storage engine the health check needs.
type RootChecker interface {
	EnsureRoot() error
}

// New returns a health report that fails while the upload root cannot be
// established.
func New(version string, store RootChecker, log *zap.Logger) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "filestore",
			Version: version,
		}),
		health.WithSystemInfo(),
	)
	if err != nil {
		return nil, err
	}

	log.Info("registering healthcheck", zap.String("check", "upload-root"))
	err = h.Register(health.Config{
		Name:    "upload-root",
		Timeout: 2 * time.Second,
		Check: func(context.Context) error {
			return store.EnsureRoot()
		},
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}
