// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Envelope описывает стандартную структуру JSON‑ответа сервера.
// Success — признак успеха запроса. Data — данные ответа (при успехе).
// Message — человекочитаемое описание результата. ErrorCode — машинный
// код ошибки (при неуспехе). Errors — список нарушений валидации.
type Envelope struct {
	Success   bool     `json:"success"`
	Data      any      `json:"data,omitempty"`
	Message   string   `json:"message"`
	ErrorCode string   `json:"errorCode,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// Машинные коды ошибок, которые сервер отдаёт клиенту.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeMissingIdentifier  = "MISSING_IDENTIFIER"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeSessionRevoked     = "SESSION_REVOKED"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateKey       = "DUPLICATE_KEY"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeInternal           = "INTERNAL_ERROR"
)

// OK возвращает успешный Envelope с данными и сообщением.
func OK(data any, message string) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// Error возвращает Envelope с кодом ошибки и сообщением.
func Error(code, msg string) Envelope {
	return Envelope{
		Success:   false,
		Message:   msg,
		ErrorCode: code,
	}
}

// ValidationError формирует Envelope на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст в поле Errors.
func ValidationError(errs validator.ValidationErrors) Envelope {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than or equal to %s", err.Field(), err.Param()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is shorter than allowed", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is longer than allowed", err.Field()))
		case "datetime":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only date in format %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Envelope{
		Success:   false,
		Message:   "validation failed",
		ErrorCode: CodeValidation,
		Errors:    errsMsgs,
	}
}
