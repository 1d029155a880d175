package dto

// UserFavoritesRequest - тело запросов к избранному: чьё избранное меняем.
// Указатель отличает отсутствующий user_id от нулевого.
type UserFavoritesRequest struct {
	UserID *int64 `json:"user_id" binding:"required,gte=0"`
}
