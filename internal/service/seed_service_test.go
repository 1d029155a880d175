package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/starwars-backend/internal/models"
)

func TestDefaultDataset_IsValid(t *testing.T) {
	d := DefaultDataset()
	assert.NoError(t, d.Validate())
	assert.NotEmpty(t, d.Users)
	assert.NotEmpty(t, d.Characters)
	assert.NotEmpty(t, d.Planets)
}

func TestDataset_Validate_NameTooLong(t *testing.T) {
	d := Dataset{Planets: []SeedEntry{{Name: strings.Repeat("a", models.MaxNameLength+1)}}}
	err := d.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не более")
}

func TestDataset_Validate_DescriptionTooLong(t *testing.T) {
	d := Dataset{Characters: []SeedEntry{{Name: "Yoda", Description: strings.Repeat("ы", models.MaxDescriptionLength+1)}}}
	assert.Error(t, d.Validate())
}

func TestDataset_Validate_DescriptionAtLimitIsAccepted(t *testing.T) {
	d := Dataset{Characters: []SeedEntry{{Name: "Yoda", Description: strings.Repeat("ы", models.MaxDescriptionLength)}}}
	assert.NoError(t, d.Validate())
}

func TestDataset_Validate_Users(t *testing.T) {
	tests := []struct {
		name string
		user SeedUser
	}{
		{name: "no password", user: SeedUser{Email: "han@falcon.org"}},
		{name: "password over bcrypt limit", user: SeedUser{Email: "han@falcon.org", Password: strings.Repeat("p", 73)}},
		{name: "malformed email", user: SeedUser{Email: "han-at-falcon", Password: "chewie"}},
		{name: "email too long", user: SeedUser{Email: strings.Repeat("h", 60) + "@" + strings.Repeat("f", 60) + ".org", Password: "chewie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dataset{Users: []SeedUser{tt.user}}
			assert.Error(t, d.Validate())
		})
	}
}

func TestDataset_Validate_BlankName(t *testing.T) {
	d := Dataset{Planets: []SeedEntry{{Name: "  ", Description: "nameless rock"}}}
	err := d.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не может быть пустым")
}
