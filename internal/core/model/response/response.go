package response

// ErrorResponse is the error envelope for every failing API response.
type ErrorResponse struct {
	Message string `json:"message"`
}
