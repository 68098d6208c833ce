package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createUserRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

// userResponse is the reduced {username, id} record used by creation and
// listing responses.
type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}
