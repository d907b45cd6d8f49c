// Package common — http.go содержит общие утилиты HTTP-обработчиков:
// сериализацию JSON-ответов, маппинг ошибок на статус-коды
// и передачу идентификатора пользователя через контекст запроса.
package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID кладёт идентификатор авторизованного пользователя в контекст.
// Вызывается middleware после проверки сессии.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID достаёт идентификатор пользователя из контекста.
// Второе значение false, если middleware авторизации не отработал.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WriteJSON сериализует ответ в JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Ошибка сериализации ответа")
	}
}

// errorResponse — единый формат тела ошибки.
type errorResponse struct {
	Error string `json:"error"`
}

// WriteError возвращает клиенту ошибку с подходящим статус-кодом.
// Известные доменные ошибки отдаются с их текстом, всё остальное
// прячется за 500, чтобы не утекали детали SQL.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "внутренняя ошибка сервера"

	switch {
	case errors.Is(err, ErrGeneratorNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrReferralNotFound):
		status, message = http.StatusNotFound, err.Error()

	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrWrongPassword):
		status, message = http.StatusUnauthorized, err.Error()

	case errors.Is(err, ErrNotAdmin):
		status, message = http.StatusForbidden, err.Error()

	case errors.Is(err, ErrTooManyAttempts):
		status, message = http.StatusTooManyRequests, err.Error()

	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrBelowMinimum),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrDepositToday),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrDepositsDisabled),
		errors.Is(err, ErrWithdrawalsDisabled),
		errors.Is(err, ErrConversionsDisabled):
		status, message = http.StatusBadRequest, err.Error()

	default:
		log.WithError(err).Error("Необработанная ошибка в HTTP-обработчике")
	}

	WriteJSON(w, status, errorResponse{Error: message})
}

// BearerToken достаёт токен сессии из заголовка Authorization.
// Возвращает пустую строку, если заголовок отсутствует или не Bearer.
func BearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// DecodeJSON разбирает тело запроса в структуру dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
