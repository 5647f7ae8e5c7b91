package validator_test

import (
	"net/http"
	"testing"

	"timepiece/internal/usecase"
	"timepiece/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineReq struct {
	ID       int64 `json:"id" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gte=1"`
}

type orderReq struct {
	Contact   string    `json:"contact" validate:"required,max=15"`
	Payment   string    `json:"payment_method" validate:"omitempty,oneof=COD"`
	CartItems []lineReq `json:"cart_items" validate:"required,min=1,dive"`
	Quantity  *int64    `json:"quantity" validate:"omitempty,gte=1"`
}

func TestRequestValidator_OK(t *testing.T) {
	v := validator.NewRequestValidator()
	err := v.Validate(&orderReq{
		Contact:   "0901",
		CartItems: []lineReq{{ID: 1, Quantity: 2}},
	})
	assert.NoError(t, err)
}

func TestRequestValidator_FieldMessages(t *testing.T) {
	v := validator.NewRequestValidator()
	q := int64(0)
	err := v.Validate(&orderReq{
		Contact:   "0123456789012345",
		Payment:   "Crypto",
		CartItems: []lineReq{{ID: 0, Quantity: 1}},
		Quantity:  &q,
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "validation error", he.Message)
	assert.Equal(t, map[string]string{
		"contact":          "Ensure this field has no more than 15 characters.",
		"payment_method":   `"Crypto" is not a valid choice.`,
		"cart_items[0].id": "This field is required.",
		"quantity":         "Ensure this value is greater than or equal to 1.",
	}, he.Fields)
}

func TestRequestValidator_EmptyList(t *testing.T) {
	v := validator.NewRequestValidator()
	err := v.Validate(&orderReq{Contact: "0901", CartItems: []lineReq{}})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "This list may not be empty.", he.Fields["cart_items"])
}

type accountReq struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Gender   string `json:"gender" validate:"required,oneof=Male Female Other"`
	Password string `json:"password" validate:"required,eqfield=Confirm"`
	Confirm  string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func TestRequestValidator_AccountMessages(t *testing.T) {
	v := validator.NewRequestValidator()

	tests := []struct {
		name string
		req  accountReq
		want map[string]string
	}{
		{
			name: "ok",
			req:  accountReq{Username: "taro.y+1@x", Email: "taro@example.com", Gender: "Other", Password: "a", Confirm: "a"},
		},
		{
			name: "format errors",
			req:  accountReq{Username: "taro yamada", Email: "not-an-email", Gender: "Robot", Password: "a", Confirm: "a"},
			want: map[string]string{
				"username": "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.",
				"email":    "Enter a valid email address.",
				"gender":   `"Robot" is not a valid choice.`,
			},
		},
		{
			name: "mismatch on both sides",
			req:  accountReq{Username: "taro", Email: "taro@example.com", Gender: "Male", Password: "a", Confirm: "b"},
			want: map[string]string{
				"password":         "Passwords don't match.",
				"confirm_password": "Passwords don't match.",
			},
		},
		{
			name: "empty password still reports mismatch",
			req:  accountReq{Username: "taro", Email: "taro@example.com", Gender: "Male", Confirm: "b"},
			want: map[string]string{
				"password":         "This field is required.",
				"confirm_password": "Passwords don't match.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := v.Validate(&req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, he.Fields)
		})
	}
}
