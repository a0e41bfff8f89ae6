package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequired(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		err := ValidateRequired([]Field{
			{Name: "name", Value: "Ann"},
			{Name: "email", Value: "a@x.com"},
		})
		assert.NoError(t, err)
	})

	t.Run("lists every missing field in order", func(t *testing.T) {
		err := ValidateRequired([]Field{
			{Name: "a", Value: ""},
			{Name: "b", Value: " "},
			{Name: "c", Value: "ok"},
		})
		require.Error(t, err)
		assert.Equal(t, "missing required fields: a, b", err.Error())
	})

	t.Run("whitespace only is missing", func(t *testing.T) {
		err := ValidateRequired([]Field{{Name: "name", Value: "\t \n"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@x.com",
		"first.last@sub.example.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"no domain@x.com",
		"missing@dot",
		"@x.com",
		"user@",
		"user@x .com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("a much longer passphrase"))
}
