package dto

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
