package httpdto

// RegisterRequest is used for POST /auth/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is used for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SendMessageRequest is used for POST /messages.
type SendMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Content string `json:"content"`
}

// ReactRequest is used for POST /messages/:uuid/reactions.
type ReactRequest struct {
	Content string `json:"content" binding:"required"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func NewErrorResponse(message, code string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}

func (e ErrorResponse) WithFields(fields map[string]string) ErrorResponse {
	e.Fields = fields
	return e
}
