package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrRunNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "run")
}

// ErrInvalidRequest covers requests rejected before reaching the engine.
type ErrInvalidRequest struct {
	error
}

func NewErrInvalidRequest(format string, args ...any) *ErrInvalidRequest {
	return &ErrInvalidRequest{fmt.Errorf(format, args...)}
}

func NewErrUnsupportedReportFormat(format string) *ErrInvalidRequest {
	return NewErrInvalidRequest("unsupported report format: %s", format)
}

type ErrPersistenceDisabled struct {
	error
}

func NewErrPersistenceDisabled() *ErrPersistenceDisabled {
	return &ErrPersistenceDisabled{fmt.Errorf("run persistence is disabled")}
}
