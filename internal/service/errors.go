package service

import (
	"fmt"
	"strings"

	"github.com/kubev2v/training-planner/internal/hardware"
)

// ErrInvalidEstimation is returned when the estimator rejects a request.
type ErrInvalidEstimation struct {
	error
}

func NewErrInvalidEstimation(err error) *ErrInvalidEstimation {
	return &ErrInvalidEstimation{fmt.Errorf("invalid estimation request: %w", err)}
}

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrHardwareNotFound(key hardware.Key) *ErrResourceNotFound {
	return NewErrResourceNotFound(key.String(), "hardware")
}

type ErrUnsupportedReportFormat struct {
	error
}

func NewErrUnsupportedReportFormat(format string, supported []string) *ErrUnsupportedReportFormat {
	return &ErrUnsupportedReportFormat{fmt.Errorf("unsupported report format %q, must be one of %s", format, strings.Join(supported, ", "))}
}
