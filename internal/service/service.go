package service

import (
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/repository"
)

// FinePolicy supplies the configured fine amounts; the lifecycle fixes only
// the trigger conditions.
type FinePolicy struct {
	DayRate   float64
	DamageFee float64
}

const (
	loanWindowMinDays = 1
	loanWindowMaxDays = 15

	reservationWindowMinDays = 1
	reservationWindowMaxDays = 7
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	policy FinePolicy
	pub    events.Publisher
}

func NewService(repo repository.Repository, policy FinePolicy, pub events.Publisher, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		policy: policy,
		pub:    pub,
	}
}
