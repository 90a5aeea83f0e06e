// Package topup реализует HTTP-обработчик пополнения кошелька.
//
// Сумма передаётся в минорных единицах валюты и должна быть положительной.
// После успешного пополнения в очередь сообщений публикуется событие
// для отправки письма владельцу кошелька.
package topup

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

// Request — входные данные пополнения кошелька.
type Request struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Handler обрабатывает запросы на пополнение кошелька.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики кошельков.
type Service interface {
	TopUp(ctx context.Context, walletUID string, amount int64) (*models.Wallet, error)
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
// @Summary Пополнение кошелька
// @Description Увеличивает баланс кошелька на указанную сумму в минорных единицах.
// @Tags Wallets
// @Accept  json
// @Produce  json
// @Param uid path string true "Идентификатор кошелька"
// @Param request body Request true "Сумма пополнения"
// @Success 200 {object} map[string]any "Кошелёк пополнен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или сумма"
// @Failure 404 {object} response.ErrorResponse "Кошелёк не найден"
// @Failure 409 {object} response.ErrorResponse "Кошелёк неактивен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /wallets/{uid}/topup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wallet.topup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	walletUID := chi.URLParam(r, "uid")
	if walletUID == "" {
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
	log.Info("request body decoded", slog.Int64("amount", req.Amount))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	wallet, err := h.service.TopUp(r.Context(), walletUID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWalletNotFound):
			log.Error("wallet not found", slog.String("wallet_uid", walletUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("wallet not found"))
		case errors.Is(err, models.ErrWalletInactive):
			log.Error("wallet is inactive", slog.String("wallet_uid", walletUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("wallet is inactive"))
		default:
			log.Error("failed to top up wallet", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not top up wallet"))
		}
		return
	}

	log.Info("success to top up wallet", slog.String("wallet_uid", walletUID),
		slog.Int64("new_balance", wallet.Balance))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"wallet_uid": wallet.UID,
		"balance":    wallet.Balance,
		"currency":   wallet.Currency,
	}))
}
