package stocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMissing(t *testing.T) {
	r := Record{"symbol": "TEST"}

	assert.Equal(t, []string{"name", "price", "change", "change_percent", "day_high", "day_low", "previous_close"}, r.Missing())
	assert.Empty(t, Record{
		"symbol": "A", "name": "B", "price": 1.0, "change": 1.0, "change_percent": 1.0,
		"day_high": 1.0, "day_low": 1.0, "previous_close": 1.0,
	}.Missing())
}

func TestRecordNumberFromDecodedJSON(t *testing.T) {
	var recs []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"price": 12, "change": "1.5", "name": null}]`), &recs))

	v, ok := recs[0].Number("price")
	assert.True(t, ok)
	assert.Equal(t, 12.0, v)

	_, ok = recs[0].Number("change")
	assert.False(t, ok)
	_, ok = recs[0].Number("day_low")
	assert.False(t, ok)
	_, ok = recs[0].Text("name")
	assert.False(t, ok)
}

func TestEnvelopeOmitsAbsentSide(t *testing.T) {
	b, err := json.Marshal(Envelope{Success: false, Error: "input data cannot be empty"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"input data cannot be empty"}`, string(b))
}

func TestValidationErrorMessages(t *testing.T) {
	assert.Equal(t, "Input data cannot be empty", ErrEmptyInput().Error())
	assert.Equal(t, "Missing required fields: price, change", ErrMissingFields([]string{"price", "change"}).Error())
	assert.Equal(t, `Invalid value for field "day_low" in record 3`, ErrInvalidField("day_low", 3).Error())
}
