package login

import (
	"context"

	"github.com/svetlanasieber/smart-wallet/internal/models"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, models.UserRole, error)
}
