package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"недостаточно средств — 400", ErrInsufficientBalance, http.StatusBadRequest},
		{"некорректная сумма — 400", ErrInvalidAmount, http.StatusBadRequest},
		{"генератор не найден — 404", ErrGeneratorNotFound, http.StatusNotFound},
		{"нет сессии — 401", ErrUnauthorized, http.StatusUnauthorized},
		{"не админ — 403", ErrNotAdmin, http.StatusForbidden},
		{"перебор попыток — 429", ErrTooManyAttempts, http.StatusTooManyRequests},
		{"неизвестная ошибка прячется за 500", errors.New("pq: column does not exist"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.status {
				t.Errorf("статус %d, ожидался %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusInternalServerError &&
				strings.Contains(rec.Body.String(), "column") {
				t.Error("текст внутренней ошибки утёк в ответ")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"обычный токен", "Bearer abc123", "abc123"},
		{"регистр схемы не важен", "bearer abc123", "abc123"},
		{"нет заголовка", "", ""},
		{"другая схема", "Basic abc123", ""},
		{"пустой токен", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken(%q) = %q, ожидалось %q", tt.header, got, tt.want)
			}
		})
	}
}
