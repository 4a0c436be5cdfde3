package estimation

import (
	"fmt"

	"github.com/kubev2v/training-planner/internal/hardware"
)

type ErrMissingAssetCount struct {
	error
}

func NewErrMissingAssetCount(count int) *ErrMissingAssetCount {
	return &ErrMissingAssetCount{fmt.Errorf("asset count must be greater than 0, got %d", count)}
}

type ErrUnknownHardwareKey struct {
	error
}

func NewErrUnknownHardwareKey(key hardware.Key) *ErrUnknownHardwareKey {
	return &ErrUnknownHardwareKey{fmt.Errorf("unknown hardware %q", key)}
}

// ErrScheduleOverflow is returned when the step count of a schedule does not fit in an int.
type ErrScheduleOverflow struct {
	error
}

func NewErrScheduleOverflow(epochs, stepsPerEpoch int) *ErrScheduleOverflow {
	return &ErrScheduleOverflow{fmt.Errorf("%d epochs of %d steps exceed the maximum number of training steps", epochs, stepsPerEpoch)}
}
