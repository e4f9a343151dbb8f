package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")

	// ErrRejected возвращается, когда шлюз окончательно отклонил запрос
	// (4xx): повторная отправка того же запроса не поможет
	ErrRejected = errors.New("notifyservice client: request rejected")

	// ErrDeliveryFailed возвращается, когда шлюз не смог доставить сообщение
	ErrDeliveryFailed = errors.New("notifyservice client: delivery failed")
)
