package respond_check

// RespondCheckRequest ответ персонала на проверку
type RespondCheckRequest struct {
	Response string `json:"response"` // left | still_seated
}
