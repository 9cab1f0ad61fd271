package domain

// Todo is the sole domain entity: a titled, completable task owned by a user.
//
// The table's composite key is (user_id, id); a todo is always addressed
// by both fields together. ID, UserID and Created are server-assigned at
// creation and immutable afterwards; Title and Completed are the only
// client-mutable fields.
type Todo struct {
	ID        string `json:"id" dynamodbav:"id"`
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	Title     string `json:"title" dynamodbav:"title" validate:"required,max=255"`
	Completed bool   `json:"completed" dynamodbav:"completed"`
	// Created is epoch milliseconds.
	Created int64 `json:"created" dynamodbav:"created"`
}

func (t Todo) BelongsToUser(userID string) bool {
	return t.UserID == userID
}

// Toggled returns a copy with the completion flag flipped.
func (t Todo) Toggled() Todo {
	t.Completed = !t.Completed
	return t
}
