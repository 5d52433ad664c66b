package services

import (
	"context"
	"errors"
	"time"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
	"github.com/jaeho/gongu/internal/pkg/logger"
)

// OptionResolver resolves option selections against an item's categories.
type OptionResolver interface {
	ListCategoriesByItem(ctx context.Context, itemID int64) ([]*models.OptionCategory, error)
	GetItemsByIDs(ctx context.Context, ids []int64) ([]*models.OptionItem, error)
}

// RecordStore is the record persistence surface the record service needs.
type RecordStore interface {
	Create(ctx context.Context, record *models.Record) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Record, error)
	ListByItem(ctx context.Context, itemID int64) ([]*models.Record, error)
	ListByParticipant(ctx context.Context, participantID int64) ([]*models.Record, error)
	ListByItemAndParticipant(ctx context.Context, itemID, participantID int64) ([]*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
	Delete(ctx context.Context, id int64) error
}

// PaymentStore is the payment persistence surface the services need.
type PaymentStore interface {
	Upsert(ctx context.Context, payment *models.Payment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	GetByItemAndParticipant(ctx context.Context, itemID, participantID int64) (*models.Payment, error)
	ListByItem(ctx context.Context, itemID int64) ([]*models.Payment, error)
	ListByParticipant(ctx context.Context, participantID int64) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error
}

// RecordService implements participation records and keeps each payment's
// total in sync with the participant's records.
type RecordService struct {
	items    ItemStore
	options  OptionResolver
	records  RecordStore
	payments PaymentStore
	now      func() time.Time
}

// NewRecordService creates a new RecordService
func NewRecordService(items ItemStore, options OptionResolver, records RecordStore, payments PaymentStore) *RecordService {
	return &RecordService{
		items:    items,
		options:  options,
		records:  records,
		payments: payments,
		now:      time.Now,
	}
}

// Create joins a participant to an item with a quantity and option
// selections. The item must be open, not deleted and before its deadline,
// and the selections must cover every option category exactly once.
func (s *RecordService) Create(ctx context.Context, itemID, participantID int64, req dto.CreateRecordRequest) (*models.Record, int64, error) {
	item, err := s.getJoinableItem(ctx, itemID)
	if err != nil {
		return nil, 0, err
	}

	if req.Quantity < 1 {
		return nil, 0, apperrors.ErrQuantityNotPositive
	}

	options, err := s.resolveSelection(ctx, itemID, req.OptionItemIDs)
	if err != nil {
		return nil, 0, err
	}

	record := &models.Record{
		ParticipantID: participantID,
		ItemID:        itemID,
		Quantity:      req.Quantity,
		Options:       options,
	}

	id, err := s.records.Create(ctx, record)
	if err != nil {
		return nil, 0, err
	}
	record.ID = id

	if err := s.syncPayment(ctx, item, participantID); err != nil {
		return nil, 0, err
	}

	logger.Info().Int64("recordID", id).Int64("itemID", itemID).
		Int64("participantID", participantID).Msg("Record created")

	return record, record.Cost(item.Price), nil
}

// Get retrieves a record with its derived cost. Visible to the participant,
// the item's host and admins.
func (s *RecordService) Get(ctx context.Context, id, viewerID int64, isAdmin bool) (*models.Record, int64, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, 0, apperrors.ErrRecordNotFound
		}
		return nil, 0, err
	}

	item, err := s.items.GetByID(ctx, record.ItemID)
	if err != nil {
		return nil, 0, err
	}

	if viewerID != record.ParticipantID && !canModify(viewerID, item.HostID, isAdmin) {
		return nil, 0, apperrors.NewForbiddenError("Not allowed to view this record")
	}

	return record, record.Cost(item.Price), nil
}

// ListByItem retrieves all records of an item with costs. Host or admin only.
func (s *RecordService) ListByItem(ctx context.Context, itemID, viewerID int64, isAdmin bool) ([]dto.RecordResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	if !canModify(viewerID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may list an item's records")
	}

	records, err := s.records.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return toRecordResponses(records, item.Price), nil
}

// ListMine retrieves a participant's records on one item with costs
func (s *RecordService) ListMine(ctx context.Context, itemID, participantID int64) ([]dto.RecordResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	records, err := s.records.ListByItemAndParticipant(ctx, itemID, participantID)
	if err != nil {
		return nil, err
	}

	return toRecordResponses(records, item.Price), nil
}

// Update replaces a record's quantity and option selections. Only the
// participant may change their record, and only while the item is joinable.
func (s *RecordService) Update(ctx context.Context, id, actorID int64, req dto.CreateRecordRequest) (*models.Record, int64, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, 0, apperrors.ErrRecordNotFound
		}
		return nil, 0, err
	}

	if record.ParticipantID != actorID {
		return nil, 0, apperrors.NewForbiddenError("Only the participant may change this record")
	}

	item, err := s.getJoinableItem(ctx, record.ItemID)
	if err != nil {
		return nil, 0, err
	}

	if req.Quantity < 1 {
		return nil, 0, apperrors.ErrQuantityNotPositive
	}

	options, err := s.resolveSelection(ctx, record.ItemID, req.OptionItemIDs)
	if err != nil {
		return nil, 0, err
	}

	record.Quantity = req.Quantity
	record.Options = options

	if err := s.records.Update(ctx, record); err != nil {
		return nil, 0, err
	}

	if err := s.syncPayment(ctx, item, record.ParticipantID); err != nil {
		return nil, 0, err
	}

	return record, record.Cost(item.Price), nil
}

// Delete withdraws a record. The participant or an admin may delete; the
// payment total is recomputed from the remaining records.
func (s *RecordService) Delete(ctx context.Context, id, actorID int64, isAdmin bool) error {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return err
	}

	if !canModify(actorID, record.ParticipantID, isAdmin) {
		return apperrors.NewForbiddenError("Only the participant may withdraw this record")
	}

	item, err := s.items.GetByID(ctx, record.ItemID)
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}

	return s.syncPayment(ctx, item, record.ParticipantID)
}

func (s *RecordService) getJoinableItem(ctx context.Context, itemID int64) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	switch {
	case item.IsDeleted:
		return nil, apperrors.ErrItemDeleted
	case item.JoinType != models.JoinTypeOpen:
		return nil, apperrors.ErrItemClosed
	case !s.now().Before(item.Deadline):
		return nil, apperrors.ErrPastDeadline
	}

	return item, nil
}

// resolveSelection loads the selected option items and checks that they
// cover each option category of the item exactly once.
func (s *RecordService) resolveSelection(ctx context.Context, itemID int64, optionItemIDs []int64) ([]*models.OptionItem, error) {
	options, err := s.options.GetItemsByIDs(ctx, optionItemIDs)
	if err != nil {
		return nil, err
	}
	if len(options) != len(optionItemIDs) {
		return nil, apperrors.ErrOptionItemNotFound
	}

	categories, err := s.options.ListCategoriesByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	itemCategories := make(map[int64]bool, len(categories))
	for _, cat := range categories {
		itemCategories[cat.ID] = true
	}

	picked := make(map[int64]int, len(categories))
	for _, opt := range options {
		if !itemCategories[opt.CategoryID] {
			return nil, apperrors.ErrOptionSelection
		}
		picked[opt.CategoryID]++
	}

	for _, cat := range categories {
		if picked[cat.ID] != 1 {
			return nil, apperrors.ErrOptionSelection
		}
	}

	return options, nil
}

// syncPayment recomputes the participant's total on the item from all of
// their records and upserts the payment row. A fresh payment starts PENDING;
// an existing one keeps its status.
func (s *RecordService) syncPayment(ctx context.Context, item *models.Item, participantID int64) error {
	records, err := s.records.ListByItemAndParticipant(ctx, item.ID, participantID)
	if err != nil {
		return err
	}

	var total int64
	for _, rec := range records {
		total += rec.Cost(item.Price)
	}

	payment := &models.Payment{
		ItemID:        item.ID,
		ParticipantID: participantID,
		Total:         total,
		Status:        models.PaymentStatusPending,
	}

	if _, err := s.payments.Upsert(ctx, payment); err != nil {
		return err
	}

	return nil
}

func toRecordResponses(records []*models.Record, basePrice int64) []dto.RecordResponse {
	responses := make([]dto.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, dto.RecordResponse{
			Record: rec,
			Cost:   rec.Cost(basePrice),
		})
	}
	return responses
}
