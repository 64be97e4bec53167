package serverutils

// Response is the common JSON envelope. Soft business outcomes reuse it
// with Success=false over HTTP 200 so clients can branch on the flag
// instead of the transport code.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// SoftFailureResponse is a 200-level "no" carrying context (e.g. the
// already-checked-in registrant snapshot).
func SoftFailureResponse(message string, data interface{}) Response {
	return Response{
		Success: false,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Error: ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}
