package models

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ProductListResponse struct {
	Success  bool      `json:"success"`
	Products []Product `json:"products"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}
