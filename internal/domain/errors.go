package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrStorageUnavailable хранилище недоступно или отклонило запрос
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// UpstreamError представляет неуспешный ответ провайдера авторизации.
// Сообщение ошибки совпадает с телом ответа провайдера.
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error реализует интерфейс error
func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
	}
	return e.Body
}

// NewUpstreamError создает новую ошибку провайдера
func NewUpstreamError(statusCode int, body string) *UpstreamError {
	return &UpstreamError{
		StatusCode: statusCode,
		Body:       body,
	}
}
