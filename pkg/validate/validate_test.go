package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsCollectEveryViolation(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.OrNil())

	errs.Add("name", "is required")
	errs.Add("password", "must be at least 8 characters")

	err := errs.OrNil()
	assert.Error(t, err)
	assert.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@x.com"))
	assert.True(t, IsEmail("first.last+tag@sub.example.org"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("Ana <ana@x.com>"))
	assert.False(t, IsEmail("spaces in@x.com"))
}
