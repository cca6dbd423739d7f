package types

// ApiResponse is the envelope every endpoint answers with. Period is only
// set by the range-parameterized reports.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Period  interface{} `json:"period,omitempty"`
}
