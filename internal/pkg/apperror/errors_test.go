package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("x").HTTPStatus)
	assert.Equal(t, http.StatusConflict, Conflict("x").HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).HTTPStatus)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("service: %w", Conflict("Planet already added"))

	appErr, ok := As(err)

	assert.True(t, ok)
	assert.Equal(t, "Planet already added", appErr.Message)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("fk violation")
	err := Wrap(cause, ErrCodeNotFound, "Planet doesn't exist")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")
	assert.True(t, IsNotFound(err))
}

func TestAs_PlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
