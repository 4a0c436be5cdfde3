package service

import (
	"context"

	"github.com/kubev2v/training-planner/internal/hardware"
	"github.com/kubev2v/training-planner/pkg/log"
)

type HardwareService struct {
	catalog *hardware.Catalog
	logger  *log.StructuredLogger
}

func NewHardwareService(catalog *hardware.Catalog) *HardwareService {
	if catalog == nil {
		catalog = hardware.Default()
	}
	return &HardwareService{
		catalog: catalog,
		logger:  log.NewDebugLogger("hardware_service"),
	}
}

// List returns every tier, local first.
func (hs *HardwareService) List(ctx context.Context) []hardware.Tier {
	tiers := hs.catalog.Tiers()
	hs.logger.WithContext(ctx).Operation("list_hardware").Build().Success().WithInt("count", len(tiers)).Log()
	return tiers
}

func (hs *HardwareService) Get(ctx context.Context, key hardware.Key) (hardware.Tier, error) {
	tracer := hs.logger.WithContext(ctx).Operation("get_hardware").WithString("key", key.String()).Build()

	tier, found := hs.catalog.Lookup(key)
	if !found {
		err := NewErrHardwareNotFound(key)
		tracer.Error(err).Log()
		return hardware.Tier{}, err
	}

	tracer.Success().Log()
	return tier, nil
}
