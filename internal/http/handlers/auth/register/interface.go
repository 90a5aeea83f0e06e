package register

import (
	"context"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}
