// Package edit реализует HTTP-обработчик редактирования профиля пользователя.
//
// Обработчик различает отсутствующий и пустой адрес электронной почты:
// в JSON без поля email указатель остаётся nil, с "email": "" — указывает
// на пустую строку. Сервисный слой использует это различие для настройки
// уведомлений.
package edit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/svetlanasieber/smart-wallet/internal/http/response"
	"github.com/svetlanasieber/smart-wallet/internal/lib/sl"
	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// Request — входные данные редактирования профиля.
type Request struct {
	FirstName      string  `json:"first_name" validate:"max=50"`
	LastName       string  `json:"last_name" validate:"max=50"`
	Email          *string `json:"email,omitempty"`
	ProfilePicture string  `json:"profile_picture" validate:"max=255"`
}

// Handler обрабатывает запросы на редактирование профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики редактирования профиля.
type Service interface {
	EditUserDetails(ctx context.Context, userUID string, req models.UserEditRequest) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Редактирование профиля
// @Description Обновляет имя, фамилию, почту и аватар пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param uid path string true "Идентификатор пользователя"
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} map[string]any "Профиль обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{uid}/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.edit"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", sl.UserUID(userUID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	err := h.service.EditUserDetails(r.Context(), userUID, models.UserEditRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", sl.UserUID(userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to edit profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not edit profile"))
		return
	}

	log.Info("success to edit profile", sl.UserUID(userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": userUID,
		"message":  "profile updated successfully",
	}))
}
