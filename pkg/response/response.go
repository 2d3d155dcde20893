package response

// ErrorBody is the envelope returned by middleware rejections.
type ErrorBody struct {
	Success bool     `json:"success"`
	Error   ErrorObj `json:"error"`
}

type ErrorObj struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{
		Success: false,
		Error: ErrorObj{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
