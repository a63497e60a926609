package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-lite/pkg/validator"
)

type sample struct {
	Name  string `validate:"required,max=5"`
	Count *int64 `validate:"required,min=0"`
}

func int64p(v int64) *int64 { return &v }

func TestValidateStruct_Valido(t *testing.T) {
	errs := validator.ValidateStruct(sample{Name: "ok", Count: int64p(0)})
	assert.Empty(t, errs)
}

func TestValidateStruct_CamposRequeridos(t *testing.T) {
	errs := validator.ValidateStruct(sample{})

	require.Len(t, errs, 2)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "Count", errs[1].Field)
	assert.Equal(t, "required", errs[1].Tag)
}

func TestValidateStruct_ParametroDeLaRegla(t *testing.T) {
	errs := validator.ValidateStruct(sample{Name: "demasiado largo", Count: int64p(1)})

	require.Len(t, errs, 1)
	assert.Equal(t, "max", errs[0].Tag)
	assert.Equal(t, "5", errs[0].Param)
}

func TestDescribe_MensajeLegible(t *testing.T) {
	msg := validator.Describe([]validator.FieldError{
		{Field: "Name", Tag: "required"},
		{Field: "Count", Tag: "min", Param: "0"},
	})

	assert.Equal(t, "Name: required; Count: min=0", msg)
}
