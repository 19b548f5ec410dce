package req

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name" validate:"required"`
	Count *int   `json:"count"`
}

func TestDecode(t *testing.T) {
	p, err := Decode[payload](strings.NewReader(`{"name":"a","count":3}`))
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name)
	require.NotNil(t, p.Count)
	assert.Equal(t, 3, *p.Count)
}

func TestDecodeEmptyBody(t *testing.T) {
	p, err := Decode[payload](strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.Name)
	assert.Nil(t, p.Count)
}

func TestDecodeTypeMismatch(t *testing.T) {
	_, err := Decode[payload](strings.NewReader(`{"name":42}`))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	_, err = Decode[payload](strings.NewReader(`{"name":`))
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
}

func TestIsValidReportsMissingFields(t *testing.T) {
	err := IsValid(payload{})
	require.Error(t, err)
	assert.Equal(t, []string{"name"}, MissingFields(err))

	assert.NoError(t, IsValid(payload{Name: "x"}))
	assert.Nil(t, MissingFields(nil))
}

type credentials struct {
	CustomerID string `json:"customerId" validate:"required"`
	LastName   string `json:"lastName,omitempty" validate:"required"`
	Note       string `validate:"required"`
}

func TestMissingFieldsUseJSONNames(t *testing.T) {
	err := IsValid(credentials{})
	require.Error(t, err)
	assert.Equal(t, []string{"customerId", "lastName", "Note"}, MissingFields(err))
}
