package validation_test

import (
	"errors"
	"testing"

	"urswat-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	validate := validator.New()

	type form struct {
		FullName string `validate:"required"`
		Email    string `validate:"required,email"`
		Status   string `validate:"omitempty,oneof=lead contacted client discarded"`
	}

	t.Run("Should enumerate one entry per failed field", func(t *testing.T) {
		err := validate.Struct(form{Email: "not-an-email", Status: "archived"})
		require.Error(t, err)

		fields := validation.Describe(err)
		require.Len(t, fields, 3)

		byField := map[string]string{}
		for _, fe := range fields {
			byField[fe.Field] = fe.Message
		}
		assert.Equal(t, "is required", byField["FullName"])
		assert.Equal(t, "must be a valid email address", byField["Email"])
		assert.Equal(t, "must be one of: lead contacted client discarded", byField["Status"])
	})

	t.Run("Should return nil for non-validator errors", func(t *testing.T) {
		assert.Nil(t, validation.Describe(errors.New("unexpected EOF")))
	})
}
