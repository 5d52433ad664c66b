package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for missing rows. Entity-specific
// repositories alias it so services can match on either.
var ErrNotFound = errors.New("resource not found")

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	TokenRepository   *TokenRepository
	ItemRepository    *ItemRepository
	ContentRepository *ContentRepository
	CommentRepository *CommentRepository
	OptionRepository  *OptionRepository
	RecordRepository  *RecordRepository
	PaymentRepository *PaymentRepository
	UserLogRepository *UserLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		TokenRepository:   NewTokenRepository(db),
		ItemRepository:    NewItemRepository(db),
		ContentRepository: NewContentRepository(db),
		CommentRepository: NewCommentRepository(db),
		OptionRepository:  NewOptionRepository(db),
		RecordRepository:  NewRecordRepository(db),
		PaymentRepository: NewPaymentRepository(db),
		UserLogRepository: NewUserLogRepository(db),
	}
}
