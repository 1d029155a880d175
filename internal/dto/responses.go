package dto

import "github.com/ignatzorin/starwars-backend/internal/models"

// MessageResponse - ответ только с сообщением, в том числе для ошибок.
type MessageResponse struct {
	Message string `json:"message"`
}

type UsersResponse struct {
	Message string        `json:"message"`
	Users   []models.User `json:"users"`
}

type CharactersResponse struct {
	Message    string             `json:"message"`
	Characters []models.Character `json:"characters"`
}

type CharacterResponse struct {
	Message string            `json:"message"`
	Person  *models.Character `json:"person"`
}

type PlanetsResponse struct {
	Message string          `json:"message"`
	Planets []models.Planet `json:"planets"`
}

type PlanetResponse struct {
	Message string         `json:"message"`
	Planet  *models.Planet `json:"planet"`
}

// FavoritesResponse возвращается всеми операциями с избранным.
type FavoritesResponse struct {
	Message   string            `json:"message"`
	Favorites []models.Favorite `json:"favorites"`
}
