package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"luke@rebellion.org", "  Leia.Organa+news@Alderaan.gov "}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "luke", "luke@", "@rebellion.org", "luke@rebellion", "a@b@c.org", "лук@rebellion.org"}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("name", "Hoth", 1, 4))
	assert.NoError(t, ValidateLength("name", "Хот", 0, 3))
	assert.Error(t, ValidateLength("name", "", 1, 0))
	assert.Error(t, ValidateLength("name", "Tatooine", 0, 4))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("tatooine"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("x", MaxPasswordBytes+1)))
}

func TestValidateNonEmpty(t *testing.T) {
	assert.Error(t, ValidateNonEmpty("name", "   "))
	assert.NoError(t, ValidateNonEmpty("name", "Yoda"))
}
