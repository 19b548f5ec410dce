package res

import (
	"github.com/gin-gonic/gin"
)

// Коды ошибок, которые видит клиент
const (
	CodeMissingFields = "MISSING_FIELDS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeError         = "ERROR"
)

// ErrorResponse представляет формат JSON-ответа для ошибок.
type ErrorResponse struct {
	OK      bool   `json:"ok"`                // Всегда false
	Error   string `json:"error"`             // Код или сообщение об ошибке
	Details any    `json:"details,omitempty"` // Детали ошибки (например, недостающие поля)
}

// CustomerResponse представляет успешный ответ с одним клиентом.
type CustomerResponse struct {
	OK       bool `json:"ok"`
	Customer any  `json:"customer"`
}

// MessageResponse представляет успешный ответ с сообщением.
type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// JsonResponse отправляет JSON-ответ с заданным статусом.
func JsonResponse(c *gin.Context, data any, status int) {
	c.JSON(status, data)
}

// JsonErrorResponse отправляет JSON ответ ошибки.
func JsonErrorResponse(c *gin.Context, errResponse ErrorResponse, status int) {
	errResponse.OK = false
	c.AbortWithStatusJSON(status, errResponse)
}

// Customer отправляет {ok:true, customer}
func Customer(c *gin.Context, customer any) {
	JsonResponse(c, CustomerResponse{OK: true, Customer: customer}, 200)
}

// Message отправляет {ok:true, message}
func Message(c *gin.Context, message string) {
	JsonResponse(c, MessageResponse{OK: true, Message: message}, 200)
}

// Fail отправляет {ok:false, error}
func Fail(c *gin.Context, status int, code string) {
	JsonErrorResponse(c, ErrorResponse{Error: code}, status)
}
