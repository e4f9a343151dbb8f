package notifyservice

// EmailPayload запрос на отправку email через шлюз уведомлений
type EmailPayload struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

// SMSPayload запрос на отправку SMS через шлюз уведомлений
type SMSPayload struct {
	Phone    string            `json:"phone"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params"`
}

// SendResult ответ шлюза уведомлений
type SendResult struct {
	Accepted  bool   `json:"accepted"`
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}
