package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstErrorPerField(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())
	assert.NoError(t, v.Err())

	v.Check(false, "name", "first")
	v.Check(false, "name", "second")
	v.Check(true, "title", "never")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"name": "first"}, v.Errors)
	assert.EqualError(t, v.Err(), "validation failed: name first")
}
