package services

import (
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/auth"
	"github.com/jaeho/gongu/internal/pkg/filestorage"
)

// Services holds all the service instances
type Services struct {
	AuthService    *AuthService
	ItemService    *ItemService
	ContentService *ContentService
	CommentService *CommentService
	OptionService  *OptionService
	RecordService  *RecordService
	PaymentService *PaymentService
	UserLogService *UserLogService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage *filestorage.LocalStorage) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.UserLogRepository,
			jwtService,
		),
		ItemService: NewItemService(
			repos.ItemRepository,
			repos.ContentRepository,
			repos.OptionRepository,
		),
		ContentService: NewContentService(
			repos.ItemRepository,
			repos.ContentRepository,
			storage,
		),
		CommentService: NewCommentService(
			repos.ItemRepository,
			repos.CommentRepository,
		),
		OptionService: NewOptionService(
			repos.ItemRepository,
			repos.OptionRepository,
		),
		RecordService: NewRecordService(
			repos.ItemRepository,
			repos.OptionRepository,
			repos.RecordRepository,
			repos.PaymentRepository,
		),
		PaymentService: NewPaymentService(
			repos.ItemRepository,
			repos.PaymentRepository,
		),
		UserLogService: NewUserLogService(repos.UserLogRepository),
	}
}

// canModify reports whether the actor owns the resource or is an admin.
func canModify(actorID, ownerID int64, isAdmin bool) bool {
	return isAdmin || actorID == ownerID
}
