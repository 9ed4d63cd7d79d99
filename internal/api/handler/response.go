package handler

// messageResponse is the standard envelope for confirmations and, via the
// central error handler, all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}
