package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{3, "C"},
		{8, "H"}, // Balance_Amount, la última columna en uso
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, columnLetter(c.col), "columna %d", c.col)
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&googleapi.Error{Code: 429}))
	assert.True(t, isTransient(&googleapi.Error{Code: 500}))
	assert.True(t, isTransient(&googleapi.Error{Code: 503}))
	assert.True(t, isTransient(context.DeadlineExceeded))

	assert.False(t, isTransient(&googleapi.Error{Code: 403}), "los errores de permisos no se reintentan")
	assert.False(t, isTransient(&googleapi.Error{Code: 404}))
	assert.False(t, isTransient(errors.New("otro error")))
}
