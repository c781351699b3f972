package http

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return parsed, nil
}

func fromOptionalAPIUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := fromAPIUUID(*id)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toAPIUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := openapi_types.UUID(id.Bytes())
	return &raw
}

func toAPIPoint(p kernel.Point) servers.Point {
	return servers.Point{Lng: p.Lng(), Lat: p.Lat()}
}

func fromAPIPoint(p servers.Point) (kernel.Point, error) {
	return kernel.NewPoint(p.Lng, p.Lat)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
