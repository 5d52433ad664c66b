package services

import (
	"context"
	"sort"
	"time"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/repositories"
)

func strPtr(s string) *string { return &s }

// In-memory fakes for the persistence interfaces.

type fakeItemStore struct {
	items  map[int64]*models.Item
	nextID int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: map[int64]*models.Item{}, nextID: 1}
}

func (f *fakeItemStore) Create(_ context.Context, item *models.Item) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *item
	stored.ID = id
	stored.CreatedDate = time.Now()
	f.items[id] = &stored
	return id, nil
}

func (f *fakeItemStore) GetByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) List(_ context.Context, filter repositories.ItemFilter, offset uint64, limit int) ([]*models.Item, int64, error) {
	matched := []*models.Item{}
	for _, item := range f.items {
		if !filter.IncludeDeleted && item.IsDeleted {
			continue
		}
		if filter.OpenOnly && item.JoinType != models.JoinTypeOpen {
			continue
		}
		if filter.HostID != nil && item.HostID != *filter.HostID {
			continue
		}
		copied := *item
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return []*models.Item{}, total, nil
	}
	end := int(offset) + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeItemStore) Update(_ context.Context, item *models.Item) error {
	stored, ok := f.items[item.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = item.Title
	stored.Price = item.Price
	stored.JoinType = item.JoinType
	stored.DeliveryDate = item.DeliveryDate
	return nil
}

func (f *fakeItemStore) SoftDelete(_ context.Context, id int64) error {
	item, ok := f.items[id]
	if !ok {
		return repositories.ErrNotFound
	}
	item.IsDeleted = true
	return nil
}

func (f *fakeItemStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeContentStore struct {
	contents map[int64]*models.Content
	nextID   int64
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{contents: map[int64]*models.Content{}, nextID: 1}
}

func (f *fakeContentStore) NextOrd(_ context.Context, itemID int64) (int, error) {
	max := 0
	for _, c := range f.contents {
		if c.ItemID == itemID && c.Ord > max {
			max = c.Ord
		}
	}
	return max + 1, nil
}

func (f *fakeContentStore) Create(_ context.Context, content *models.Content) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *content
	stored.ID = id
	f.contents[id] = &stored
	return id, nil
}

func (f *fakeContentStore) GetByID(_ context.Context, id int64) (*models.Content, error) {
	content, ok := f.contents[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *content
	return &copied, nil
}

func (f *fakeContentStore) ListByItem(_ context.Context, itemID int64, includeHidden bool) ([]*models.Content, error) {
	matched := []*models.Content{}
	for _, c := range f.contents {
		if c.ItemID != itemID {
			continue
		}
		if !includeHidden && c.IsHidden {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Ord < matched[j].Ord })
	return matched, nil
}

func (f *fakeContentStore) Update(_ context.Context, content *models.Content) error {
	stored, ok := f.contents[content.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Type = content.Type
	stored.Content = content.Content
	stored.Image = content.Image
	stored.Link = content.Link
	stored.IsHidden = content.IsHidden
	return nil
}

func (f *fakeContentStore) UpdateOrd(_ context.Context, id int64, ord int) error {
	stored, ok := f.contents[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Ord = ord
	return nil
}

func (f *fakeContentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.contents[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.contents, id)
	return nil
}

type fakeOptionStore struct {
	categories map[int64]*models.OptionCategory
	options    map[int64]*models.OptionItem
	nextID     int64
}

func newFakeOptionStore() *fakeOptionStore {
	return &fakeOptionStore{
		categories: map[int64]*models.OptionCategory{},
		options:    map[int64]*models.OptionItem{},
		nextID:     1,
	}
}

func (f *fakeOptionStore) CreateCategory(_ context.Context, category *models.OptionCategory) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *category
	stored.ID = id
	f.categories[id] = &stored
	return id, nil
}

func (f *fakeOptionStore) GetCategoryByID(_ context.Context, id int64) (*models.OptionCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *category
	copied.OptionItems = f.itemsOf(id)
	return &copied, nil
}

func (f *fakeOptionStore) ListCategoriesByItem(_ context.Context, itemID int64) ([]*models.OptionCategory, error) {
	matched := []*models.OptionCategory{}
	for _, cat := range f.categories {
		if cat.ItemID != itemID {
			continue
		}
		copied := *cat
		copied.OptionItems = f.itemsOf(cat.ID)
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeOptionStore) UpdateCategory(_ context.Context, id int64, name string) error {
	category, ok := f.categories[id]
	if !ok {
		return repositories.ErrNotFound
	}
	category.Name = name
	return nil
}

func (f *fakeOptionStore) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.categories, id)
	for optID, opt := range f.options {
		if opt.CategoryID == id {
			delete(f.options, optID)
		}
	}
	return nil
}

func (f *fakeOptionStore) CreateItem(_ context.Context, item *models.OptionItem) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *item
	stored.ID = id
	f.options[id] = &stored
	return id, nil
}

func (f *fakeOptionStore) GetItemByID(_ context.Context, id int64) (*models.OptionItem, error) {
	opt, ok := f.options[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *opt
	return &copied, nil
}

func (f *fakeOptionStore) GetItemsByIDs(_ context.Context, ids []int64) ([]*models.OptionItem, error) {
	matched := []*models.OptionItem{}
	for _, id := range ids {
		if opt, ok := f.options[id]; ok {
			copied := *opt
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (f *fakeOptionStore) UpdateItem(_ context.Context, item *models.OptionItem) error {
	stored, ok := f.options[item.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Name = item.Name
	stored.PriceDelta = item.PriceDelta
	return nil
}

func (f *fakeOptionStore) DeleteItem(_ context.Context, id int64) error {
	if _, ok := f.options[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.options, id)
	return nil
}

func (f *fakeOptionStore) itemsOf(categoryID int64) []*models.OptionItem {
	items := []*models.OptionItem{}
	for _, opt := range f.options {
		if opt.CategoryID == categoryID {
			copied := *opt
			items = append(items, &copied)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

type fakeRecordStore struct {
	records map[int64]*models.Record
	nextID  int64
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: map[int64]*models.Record{}, nextID: 1}
}

func (f *fakeRecordStore) Create(_ context.Context, record *models.Record) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *record
	stored.ID = id
	f.records[id] = &stored
	return id, nil
}

func (f *fakeRecordStore) GetByID(_ context.Context, id int64) (*models.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeRecordStore) ListByItem(_ context.Context, itemID int64) ([]*models.Record, error) {
	return f.list(func(r *models.Record) bool { return r.ItemID == itemID }), nil
}

func (f *fakeRecordStore) ListByParticipant(_ context.Context, participantID int64) ([]*models.Record, error) {
	return f.list(func(r *models.Record) bool { return r.ParticipantID == participantID }), nil
}

func (f *fakeRecordStore) ListByItemAndParticipant(_ context.Context, itemID, participantID int64) ([]*models.Record, error) {
	return f.list(func(r *models.Record) bool {
		return r.ItemID == itemID && r.ParticipantID == participantID
	}), nil
}

func (f *fakeRecordStore) Update(_ context.Context, record *models.Record) error {
	stored, ok := f.records[record.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Quantity = record.Quantity
	stored.Options = record.Options
	return nil
}

func (f *fakeRecordStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRecordStore) list(match func(*models.Record) bool) []*models.Record {
	matched := []*models.Record{}
	for _, r := range f.records {
		if match(r) {
			copied := *r
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

type paymentKey struct {
	itemID        int64
	participantID int64
}

type fakePaymentStore struct {
	payments map[paymentKey]*models.Payment
	nextID   int64
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[paymentKey]*models.Payment{}, nextID: 1}
}

// Upsert mirrors the database semantics: an existing row keeps its status
// and only the total is replaced.
func (f *fakePaymentStore) Upsert(_ context.Context, payment *models.Payment) (int64, error) {
	key := paymentKey{payment.ItemID, payment.ParticipantID}
	if existing, ok := f.payments[key]; ok {
		existing.Total = payment.Total
		payment.Status = existing.Status
		return existing.ID, nil
	}
	id := f.nextID
	f.nextID++
	stored := *payment
	stored.ID = id
	f.payments[key] = &stored
	return id, nil
}

func (f *fakePaymentStore) GetByID(_ context.Context, id int64) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePaymentStore) GetByItemAndParticipant(_ context.Context, itemID, participantID int64) (*models.Payment, error) {
	p, ok := f.payments[paymentKey{itemID, participantID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaymentStore) ListByItem(_ context.Context, itemID int64) ([]*models.Payment, error) {
	return f.list(func(p *models.Payment) bool { return p.ItemID == itemID }), nil
}

func (f *fakePaymentStore) ListByParticipant(_ context.Context, participantID int64) ([]*models.Payment, error) {
	return f.list(func(p *models.Payment) bool { return p.ParticipantID == participantID }), nil
}

func (f *fakePaymentStore) UpdateStatus(_ context.Context, id int64, status models.PaymentStatus) error {
	for _, p := range f.payments {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePaymentStore) list(match func(*models.Payment) bool) []*models.Payment {
	matched := []*models.Payment{}
	for _, p := range f.payments {
		if match(p) {
			copied := *p
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

type fakeCommentStore struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[int64]*models.Comment{}, nextID: 1}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *comment
	stored.ID = id
	stored.CreatedDate = time.Now()
	f.comments[id] = &stored
	comment.CreatedDate = stored.CreatedDate
	return id, nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentStore) ListByItem(_ context.Context, itemID int64, includeDeleted bool) ([]*models.Comment, error) {
	matched := []*models.Comment{}
	for _, c := range f.comments {
		if c.ItemID != itemID {
			continue
		}
		if !includeDeleted && c.IsDeleted {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeCommentStore) UpdateContent(_ context.Context, id int64, content string) error {
	comment, ok := f.comments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.Content = content
	return nil
}

func (f *fakeCommentStore) SoftDelete(_ context.Context, id int64) error {
	comment, ok := f.comments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.IsDeleted = true
	return nil
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, repositories.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return 0, repositories.ErrEmailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *user
	stored.ID = id
	stored.CreatedAt = time.Now()
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*models.RefreshToken{}, nextID: 1}
}

func (f *fakeTokenStore) Save(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	id := f.nextID
	f.nextID++
	f.tokens[token] = &models.RefreshToken{
		ID:        id,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *rt
	return &copied, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	rt, ok := f.tokens[token]
	if !ok {
		return repositories.ErrNotFound
	}
	rt.Revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, rt := range f.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

type fakeAuditStore struct {
	entries []*models.UserLog
	nextID  int64
}

func newFakeAuditStore() *fakeAuditStore {
	return &fakeAuditStore{nextID: 1}
}

func (f *fakeAuditStore) Append(_ context.Context, log *models.UserLog) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *log
	stored.ID = id
	stored.Time = time.Now()
	f.entries = append(f.entries, &stored)
	return id, nil
}

func (f *fakeAuditStore) ListByUser(_ context.Context, userID int64, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	matched := []*models.UserLog{}
	for _, e := range f.entries {
		if e.UserID == nil || *e.UserID != userID {
			continue
		}
		if !includeHidden && e.IsHidden {
			continue
		}
		matched = append(matched, e)
	}
	return paginateLogs(matched, offset, limit)
}

func (f *fakeAuditStore) ListAll(_ context.Context, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	matched := []*models.UserLog{}
	for _, e := range f.entries {
		if !includeHidden && e.IsHidden {
			continue
		}
		matched = append(matched, e)
	}
	return paginateLogs(matched, offset, limit)
}

func paginateLogs(logs []*models.UserLog, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	total := int64(len(logs))
	if offset >= uint64(len(logs)) {
		return []*models.UserLog{}, total, nil
	}
	end := int(offset) + limit
	if end > len(logs) {
		end = len(logs)
	}
	return logs[offset:end], total, nil
}

type fakeFileStore struct {
	deleted []string
}

func (f *fakeFileStore) DeleteFile(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}
