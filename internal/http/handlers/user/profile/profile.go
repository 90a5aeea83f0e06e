// Package profile реализует HTTP-обработчик получения профиля пользователя.
//
// Возвращает четыре редактируемых поля профиля в том виде, в котором
// их принимает обработчик редактирования.
package profile

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
	"github.com/svetlanasieber/smart-wallet/internal/mapper"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// Handler обрабатывает запросы на получение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения пользователя.
type Service interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает редактируемые поля профиля пользователя.
// @Tags Users
// @Produce  json
// @Param uid path string true "Идентификатор пользователя"
// @Success 200 {object} map[string]any "Данные профиля"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{uid}/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

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

	user, err := h.service.GetUser(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", sl.UserUID(userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get user"))
		return
	}

	profile := mapper.UserToEditRequest(user)

	log.Info("success to get profile", sl.UserUID(userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"first_name":      profile.FirstName,
		"last_name":       profile.LastName,
		"email":           profile.Email,
		"profile_picture": profile.ProfilePicture,
	}))
}
