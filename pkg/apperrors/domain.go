package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок портала.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (mongo.ErrNoDocuments)
// должна быть преобразована в AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Уведомления ---

// ErrNotificationNotFound - уведомление с таким id не существует
func ErrNotificationNotFound(err error) *AppError {
	return ErrNotFound(err, "notification", "Notification not found")
}

// ErrRecipientTypeNotAllowed - тип получателей недоступен роли отправителя
var ErrRecipientTypeNotAllowed = New(
	CodeForbidden,
	"notification",
	"Recipient type is not permitted for the sender's role",
	http.StatusForbidden,
)

// --- Общие права ---

// ErrInsufficientPermissions - не-владелец/не-админ пытается выполнить защищенное действие
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
