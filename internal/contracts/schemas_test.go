package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchEquipmentRequest/1.0.0", generateKeyFromPath("requests/search-equipment/v1.json"))
	assert.Equal(t, "MarketValueRequest/1.0.0", generateKeyFromPath("requests/market-value/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("requests/bad/path/v1.json"))
}

func TestValidateRequest_KnownSchemas(t *testing.T) {
	valid := map[string]string{
		"SearchEquipmentRequest":  `{"query":"excavator","minPrice":1000,"source":["mascus"]}`,
		"EquipmentDetailsRequest": `{"sourceId":"mascus","equipmentId":"m-1"}`,
		"MarketValueRequest":      `{"make":"CAT","model":"320D","year":"2018","condition":"Used"}`,
		"SimilarEquipmentRequest": `{"sourceId":"mascus","equipmentId":"m-1","limit":5}`,
	}

	for requestType, body := range valid {
		assert.NoError(t, ValidateRequest(requestType, "1.0.0", []byte(body)), requestType)
	}
}

func TestValidateRequest_RejectsUnknownFields(t *testing.T) {
	err := ValidateRequest("SearchEquipmentRequest", "1.0.0", []byte(`{"query":"x","page":2}`))
	require.Error(t, err)
}

func TestValidateRequest_RejectsWrongTypes(t *testing.T) {
	err := ValidateRequest("SearchEquipmentRequest", "1.0.0", []byte(`{"minPrice":"cheap"}`))
	require.Error(t, err)

	err = ValidateRequest("SimilarEquipmentRequest", "1.0.0", []byte(`{"sourceId":"mascus","equipmentId":"m-1","limit":0}`))
	require.Error(t, err)
}

func TestValidateRequest_InvalidJSON(t *testing.T) {
	err := ValidateRequest("SearchEquipmentRequest", "1.0.0", []byte(`{"query":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON")
}

func TestValidateRequest_UnknownSchema(t *testing.T) {
	err := ValidateRequest("NoSuchRequest", "1.0.0", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
