package http

import (
	"sync"

	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// registerSwagger publishes the embedded OpenAPI document to swag, once per
// process, and serves the UI under /swagger/.
func registerSwagger(e *echo.Echo) error {
	swaggerOnce.Do(func() {
		doc, err := servers.GetSwagger()
		if err != nil {
			swaggerErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			swaggerErr = err
			return
		}

		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
	if swaggerErr != nil {
		return swaggerErr
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
