// apierr стандартизирует ответы об ошибках HTTP-слоя promo-service.
// На вход он принимает ошибку сервисного слоя, на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: сентинелы пакета service.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/service"
)

// APIError — единый формат ошибки для клиентов.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - service.ErrInvalidArgument -> 400/invalid_argument;
//   - service.ErrNotFound -> 404/not_found;
//   - прочее -> 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, newResponse("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, newResponse("not_found", "not found")
	default:
		return http.StatusInternalServerError, newResponse("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if r != nil {
		if rid := r.Header.Get("X-Request-Id"); rid != "" {
			resp.Error.RequestID = rid
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func newResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: message}}
}
