package request

type CreateAccountRequest struct {
	Login    string `json:"login" validate:"required,min=8,max=20,nowhitespace"`
	Password string `json:"password" validate:"omitempty,min=8,max=200"`
	Variant  string `json:"variant" validate:"required,oneof=client staff admin"`
}

type UpdateAccountRequest struct {
	Login    string  `json:"login" validate:"required,min=8,max=20,nowhitespace"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=200"`
}
