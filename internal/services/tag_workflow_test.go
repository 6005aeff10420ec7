package services

import (
	"context"
	"os"
	"testing"
	"time"

	"archivio/internal/apperrors"
	"archivio/internal/logger"
	"archivio/internal/models"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// Мок-стор (заглушка): всё состояние в памяти. DocumentStore и
// TagRequestStore объявляют методы с одинаковыми именами, поэтому
// они реализованы тонкими обёртками над общим состоянием.
type memStore struct {
	users     map[int]*models.User
	docs      map[int]*models.Document
	tags      map[string]*models.Tag
	reqs      map[int]*models.TagChangeRequest
	pubReqs   map[int]*models.PublishRequest
	docTags   map[int]map[string]bool
	nextReqID int
}

type mockDocs struct{ *memStore }

type mockReqs struct{ *memStore }

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int]*models.User),
		docs:    make(map[int]*models.Document),
		tags:    make(map[string]*models.Tag),
		reqs:    make(map[int]*models.TagChangeRequest),
		pubReqs: make(map[int]*models.PublishRequest),
		docTags: make(map[int]map[string]bool),
	}
}

func (m *memStore) GetUserByID(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m mockDocs) GetDocumentByID(_ context.Context, id int) (*models.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (m mockDocs) UpdateStatus(_ context.Context, id int, status models.DocumentStatus) error {
	d, ok := m.docs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Status = status
	return nil
}

func (m mockDocs) AddTagToDocument(_ context.Context, documentID int, label string) error {
	if m.docTags[documentID] == nil {
		m.docTags[documentID] = make(map[string]bool)
	}
	m.docTags[documentID][label] = true
	return nil
}

func (m mockDocs) RemoveTagFromDocument(_ context.Context, documentID int, label string) error {
	delete(m.docTags[documentID], label)
	return nil
}

func (m *memStore) AddTag(_ context.Context, tag *models.Tag) error {
	m.tags[models.NormalizeLabel(tag.Label)] = tag
	return nil
}

func (m *memStore) FindByLabelNormalized(_ context.Context, label string) (*models.Tag, error) {
	t, ok := m.tags[models.NormalizeLabel(label)]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (m mockReqs) AddRequest(_ context.Context, req *models.TagChangeRequest) error {
	m.nextReqID++
	req.ID = m.nextReqID
	m.reqs[req.ID] = req
	return nil
}

func (m mockReqs) GetByID(_ context.Context, id int) (*models.TagChangeRequest, error) {
	r, ok := m.reqs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r, nil
}

func (m mockReqs) GetPending(_ context.Context) ([]*models.TagChangeRequest, error) {
	var out []*models.TagChangeRequest
	for _, r := range m.reqs {
		if r.Status == models.RequestPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockReqs) GetByModerator(_ context.Context, moderatorID int) ([]*models.TagChangeRequest, error) {
	var out []*models.TagChangeRequest
	for _, r := range m.reqs {
		if r.ModeratorID != nil && *r.ModeratorID == moderatorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockReqs) GetByAuthor(_ context.Context, authorID int) ([]*models.TagChangeRequest, error) {
	var out []*models.TagChangeRequest
	for _, r := range m.reqs {
		if d, ok := m.docs[r.DocumentID]; ok && d.AuthorID == authorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockReqs) GetByDocument(_ context.Context, documentID int) ([]*models.TagChangeRequest, error) {
	var out []*models.TagChangeRequest
	for _, r := range m.reqs {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockReqs) ExistsPendingDuplicate(_ context.Context, documentID int, op models.TagChangeOperation, existingTagLabel, proposedLabel string) (bool, error) {
	for _, r := range m.reqs {
		if r.Status == models.RequestPending &&
			r.DocumentID == documentID &&
			r.Operation == op &&
			r.ExistingTagLabel == existingTagLabel &&
			r.ProposedLabel == proposedLabel {
			return true, nil
		}
	}
	return false, nil
}

func (m mockReqs) UpdateStatus(_ context.Context, requestID, moderatorID int, status models.RequestStatus, dateResult time.Time) error {
	r, ok := m.reqs[requestID]
	if !ok {
		return pgx.ErrNoRows
	}
	r.Status = status
	r.ModeratorID = &moderatorID
	r.DateResult = &dateResult
	return nil
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTagWorkflow(store *memStore) *TagWorkflowService {
	return NewTagWorkflowService(store, mockDocs{store}, store, mockReqs{store}, store)
}

func seedStore() *memStore {
	store := newMemStore()
	store.users[1] = &models.User{ID: 1, Email: "author@example.com"}
	store.users[2] = &models.User{ID: 2, Email: "moderator@example.com", IsModerator: true}
	store.users[3] = &models.User{ID: 3, Email: "other@example.com"}
	store.docs[10] = &models.Document{ID: 10, Title: "Соната", AuthorID: 1, Status: models.DocumentDraft}
	return store
}

func TestRequestAddExistingTag_UnknownTag(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	_, err := service.RequestAddExistingTag(context.Background(), 1, 10, "barocco")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("ожидался NotFound для неизвестного тега, получено: %v", err)
	}
}

func TestRequestAddExistingTag_NotOwner(t *testing.T) {
	store := seedStore()
	store.tags["barocco"] = &models.Tag{Label: "barocco"}
	service := newTagWorkflow(store)

	_, err := service.RequestAddExistingTag(context.Background(), 3, 10, "barocco")
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("ожидался Forbidden для чужого документа, получено: %v", err)
	}
}

func TestRequestAddNewTag_DuplicatePending(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	if _, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic"); err != nil {
		t.Fatalf("первая заявка не прошла: %v", err)
	}
	_, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("ожидался Conflict для повторной pending-заявки, получено: %v", err)
	}
	if len(store.reqs) != 1 {
		t.Fatalf("дубликат не должен сохраняться, заявок: %d", len(store.reqs))
	}
}

func TestRequestAddNewTag_ExistingLabel(t *testing.T) {
	store := seedStore()
	store.tags["romantic"] = &models.Tag{Label: "romantic"}
	service := newTagWorkflow(store)

	_, err := service.RequestAddNewTag(context.Background(), 1, 10, "  Romantic ")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("ожидался Conflict для уже существующего label, получено: %v", err)
	}
}

func TestDecideTagRequest_RejectCreatesNoTag(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	req, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	if err := service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestRejected); err != nil {
		t.Fatalf("отклонение не прошло: %v", err)
	}

	if len(store.tags) != 0 {
		t.Fatal("REJECTED не должен создавать тег в каталоге")
	}
	if len(store.docTags[10]) != 0 {
		t.Fatal("REJECTED не должен привязывать тег к документу")
	}
	if store.reqs[req.ID].Status != models.RequestRejected {
		t.Fatalf("заявка должна стать REJECTED, статус: %s", store.reqs[req.ID].Status)
	}
}

func TestDecideTagRequest_ApproveNewLabel(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	req, err := service.RequestAddNewTag(context.Background(), 1, 10, "  romantic ")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	if err := service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestApproved); err != nil {
		t.Fatalf("одобрение не прошло: %v", err)
	}

	if len(store.tags) != 1 {
		t.Fatalf("должен быть создан ровно один тег, создано: %d", len(store.tags))
	}
	tag := store.tags["romantic"]
	if tag == nil || tag.Label != "romantic" {
		t.Fatalf("label должен быть обрезан при создании, тег: %+v", tag)
	}
	if !store.docTags[10]["romantic"] {
		t.Fatal("тег не привязан к документу")
	}
	saved := store.reqs[req.ID]
	if saved.Status != models.RequestApproved || saved.ModeratorID == nil || *saved.ModeratorID != 2 {
		t.Fatalf("заявка должна стать APPROVED с модератором 2: %+v", saved)
	}
}

func TestDecideTagRequest_ApproveExistingTag(t *testing.T) {
	store := seedStore()
	store.tags["barocco"] = &models.Tag{Label: "barocco"}
	service := newTagWorkflow(store)

	req, err := service.RequestAddExistingTag(context.Background(), 1, 10, "Barocco")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	if err := service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestApproved); err != nil {
		t.Fatalf("одобрение не прошло: %v", err)
	}
	if !store.docTags[10]["barocco"] {
		t.Fatal("существующий тег не привязан к документу")
	}
	if len(store.tags) != 1 {
		t.Fatalf("новый тег создаваться не должен, тегов: %d", len(store.tags))
	}
}

func TestDecideTagRequest_RemoveKeepsCatalog(t *testing.T) {
	store := seedStore()
	store.tags["barocco"] = &models.Tag{Label: "barocco"}
	store.docTags[10] = map[string]bool{"barocco": true}
	service := newTagWorkflow(store)

	req, err := service.RequestRemoveTag(context.Background(), 1, 10, "barocco")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	if err := service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestApproved); err != nil {
		t.Fatalf("одобрение не прошло: %v", err)
	}

	if store.docTags[10]["barocco"] {
		t.Fatal("связь документ-тег должна быть снята")
	}
	if store.tags["barocco"] == nil {
		t.Fatal("каталог тегов трогать нельзя, тег удалён")
	}
}

func TestDecideTagRequest_AlreadyDecided(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	req, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}
	if err := service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestApproved); err != nil {
		t.Fatalf("первое решение не прошло: %v", err)
	}

	err = service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestRejected)
	if apperrors.KindOf(err) != apperrors.KindState {
		t.Fatalf("ожидался State для повторного решения, получено: %v", err)
	}
	if store.reqs[req.ID].Status != models.RequestApproved {
		t.Fatal("повторное решение не должно менять статус заявки")
	}
}

func TestDecideTagRequest_NotModerator(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	req, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	err = service.DecideTagRequest(context.Background(), 3, req.ID, models.RequestApproved)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("ожидался Forbidden для немодератора, получено: %v", err)
	}
	if store.reqs[req.ID].Status != models.RequestPending {
		t.Fatal("заявка должна остаться PENDING")
	}
	if len(store.tags) != 0 || len(store.docTags[10]) != 0 {
		t.Fatal("немодератор не должен оставлять побочных эффектов")
	}
}

func TestDecideTagRequest_InvalidDecision(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	req, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	err = service.DecideTagRequest(context.Background(), 2, req.ID, models.RequestPending)
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("ожидался Validation для решения PENDING, получено: %v", err)
	}
}

func TestTagRequestsByDocument_OnlyOwner(t *testing.T) {
	store := seedStore()
	service := newTagWorkflow(store)

	if _, err := service.RequestAddNewTag(context.Background(), 1, 10, "romantic"); err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}

	reqs, err := service.TagRequestsByDocument(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("автор должен видеть заявки документа: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("ожидалась одна заявка, получено: %d", len(reqs))
	}

	_, err = service.TagRequestsByDocument(context.Background(), 3, 10)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("ожидался Forbidden для чужого документа, получено: %v", err)
	}
}
