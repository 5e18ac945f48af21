package api_test

import (
	"testing"

	"fieldservice/internal/adapters/in/http/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger_DocumentIsValid(t *testing.T) {
	doc, err := api.GetSwagger()

	require.NoError(t, err)
	assert.Equal(t, "Field Service API", doc.Info.Title)
	for _, path := range []string{
		"/api/v1/orders",
		"/api/v1/orders/{orderId}",
		"/api/v1/orders/{orderId}/assignments",
		"/api/v1/orders/{orderId}/visits",
		"/api/v1/visits/{visitId}",
		"/api/v1/technicians",
		"/api/v1/technicians/{technicianId}/availabilities",
		"/api/v1/technicians/{technicianId}/workload",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestRegisterSwaggerDoc_IsIdempotent(t *testing.T) {
	api.RegisterSwaggerDoc()
	api.RegisterSwaggerDoc()

	doc, err := swag.ReadDoc()

	require.NoError(t, err)
	assert.Contains(t, doc, `"operationId": "ScheduleAssignment"`)
}
