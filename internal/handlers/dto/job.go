package dto

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Salary      int64  `json:"salary"`
}

type UpdateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Salary      int64  `json:"salary"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
