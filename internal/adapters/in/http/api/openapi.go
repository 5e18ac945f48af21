package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var openAPIDocument []byte

var registerOnce sync.Once

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type document struct{}

func (document) ReadDoc() string {
	return string(openAPIDocument)
}

// RegisterSwaggerDoc makes the document available to the /swagger UI. swag panics on a
// second registration under the same name, so only the first call registers.
func RegisterSwaggerDoc() {
	registerOnce.Do(func() {
		swag.Register(swag.Name, document{})
	})
}
