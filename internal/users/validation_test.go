package users

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsMinimalProfile(t *testing.T) {
	in := Update{Name: " Asha ", Email: "asha@example.in"}.Normalize()
	assert.NoError(t, in.Validate())
	assert.Equal(t, "Asha", in.Name)
}

func TestValidateMessages(t *testing.T) {
	cases := []struct {
		name  string
		in    Update
		field string
		msg   string
	}{
		{"missing name", Update{Email: "a@b.co"}, "name", "Name is required"},
		{"short name", Update{Name: "A", Email: "a@b.co"}, "name", "Name should be at least 2 characters long"},
		{"missing email", Update{Name: "Asha"}, "email", "Email is required"},
		{"bad email", Update{Name: "Asha", Email: "asha@"}, "email", "Please enter a valid email address"},
		{"bad phone", Update{Name: "Asha", Email: "a@b.co", Phone: "12345"}, "phone", "Please enter a valid phone number (e.g., +1 123-456-7890)"},
		{"short location", Update{Name: "Asha", Email: "a@b.co", Location: "Go"}, "location", "Location should be at least 3 characters long"},
		{"long bio", Update{Name: "Asha", Email: "a@b.co", Bio: strings.Repeat("x", 201)}, "bio", "Bio should not exceed 200 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Normalize().Validate()
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, FieldError{Field: tc.field, Message: tc.msg}, vErr.Fields[0])
		})
	}
}

func TestValidatePhoneFormats(t *testing.T) {
	for _, phone := range []string{"+1 123-456-7890", "(123) 456-7890", "123.456.7890", "+91 9876543210"} {
		in := Update{Name: "Asha", Email: "a@b.co", Phone: phone}
		assert.NoError(t, in.Validate(), phone)
	}
}

func TestValidateCollectsAllFields(t *testing.T) {
	err := Update{Phone: "x"}.Validate()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 3)
	assert.Contains(t, err.Error(), "phone:")
}
