package request

type CreateTodoRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Completed bool   `json:"completed"`
}

// UpdateTodoRequest carries the full todo. The stored record is fully
// replaced, not patched.
type UpdateTodoRequest struct {
	ID        string `json:"id" validate:"required"`
	UserID    string `json:"user_id"`
	Title     string `json:"title" validate:"required,max=255"`
	Completed bool   `json:"completed"`
	Created   int64  `json:"created"`
}
