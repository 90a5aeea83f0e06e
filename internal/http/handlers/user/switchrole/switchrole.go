// Package switchrole реализует HTTP-обработчик переключения роли пользователя.
//
// Роль меняется на противоположную: USER становится ADMIN и наоборот.
// Доступен только администраторам, проверка роли выполняется в middleware.
package switchrole

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/svetlanasieber/smart-wallet/internal/http/response"
	"github.com/svetlanasieber/smart-wallet/internal/lib/sl"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// Handler обрабатывает запросы на переключение роли.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики переключения роли.
type Service interface {
	SwitchRole(ctx context.Context, userUID string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключение роли пользователя
// @Description Меняет роль пользователя на противоположную. Только для ADMIN.
// @Tags Users
// @Produce  json
// @Param uid path string true "Идентификатор пользователя"
// @Success 200 {object} map[string]any "Роль изменена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{uid}/role [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.switchrole"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")
	if userUID == "" {
		log.Error("missing uid in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing uid in url"))
		return
	}

	if err := h.service.SwitchRole(r.Context(), userUID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", sl.UserUID(userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to switch role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not switch role"))
		return
	}

	log.Info("success to switch role", sl.UserUID(userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": userUID,
		"message":  "role switched successfully",
	}))
}
