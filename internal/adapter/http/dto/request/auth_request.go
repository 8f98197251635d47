package request

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"buyer@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
	Name     string `json:"name" example:"Ada Lovelace"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"buyer@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}
