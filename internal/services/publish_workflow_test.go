package services

import (
	"context"
	"testing"
	"time"

	"archivio/internal/apperrors"
	"archivio/internal/models"
)

type mockPubReqs struct{ *memStore }

func (m mockPubReqs) AddRequest(_ context.Context, req *models.PublishRequest) error {
	m.nextReqID++
	req.ID = m.nextReqID
	m.pubReqs[req.ID] = req
	return nil
}

func (m mockPubReqs) GetPendingByDocument(_ context.Context, documentID int) (*models.PublishRequest, error) {
	for _, r := range m.pubReqs {
		if r.DocumentID == documentID && r.Status == models.RequestPending {
			return r, nil
		}
	}
	return nil, nil
}

func (m mockPubReqs) GetByStatus(_ context.Context, status models.RequestStatus) ([]*models.PublishRequest, error) {
	var out []*models.PublishRequest
	for _, r := range m.pubReqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockPubReqs) GetByModerator(_ context.Context, moderatorID int) ([]*models.PublishRequest, error) {
	var out []*models.PublishRequest
	for _, r := range m.pubReqs {
		if r.ModeratorID != nil && *r.ModeratorID == moderatorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockPubReqs) GetByAuthor(_ context.Context, authorID int) ([]*models.PublishRequest, error) {
	var out []*models.PublishRequest
	for _, r := range m.pubReqs {
		if d, ok := m.docs[r.DocumentID]; ok && d.AuthorID == authorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m mockPubReqs) UpdateStatusByDocument(_ context.Context, documentID, moderatorID int, status models.RequestStatus, dateResult time.Time) error {
	for _, r := range m.pubReqs {
		if r.DocumentID == documentID && r.Status == models.RequestPending {
			r.Status = status
			r.ModeratorID = &moderatorID
			r.DateResult = &dateResult
			return nil
		}
	}
	return nil
}

func newPublishWorkflow(store *memStore) *PublishWorkflowService {
	return NewPublishWorkflowService(store, mockDocs{store}, mockPubReqs{store}, store)
}

func TestAskForPublication(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	req, err := service.AskForPublication(context.Background(), 1, 10, "готово к публикации")
	if err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}
	if req.Status != models.RequestPending {
		t.Fatalf("заявка должна быть PENDING, статус: %s", req.Status)
	}
	if store.docs[10].Status != models.DocumentPending {
		t.Fatalf("документ должен перейти в PENDING, статус: %s", store.docs[10].Status)
	}
}

func TestAskForPublication_DoubleAsk(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	if _, err := service.AskForPublication(context.Background(), 1, 10, ""); err != nil {
		t.Fatalf("первая заявка не прошла: %v", err)
	}
	_, err := service.AskForPublication(context.Background(), 1, 10, "")
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("ожидался Conflict для повторной заявки, получено: %v", err)
	}
	if len(store.pubReqs) != 1 {
		t.Fatalf("дубликат не должен сохраняться, заявок: %d", len(store.pubReqs))
	}
}

func TestAskForPublication_NotOwner(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	_, err := service.AskForPublication(context.Background(), 3, 10, "")
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("ожидался Forbidden для чужого документа, получено: %v", err)
	}
}

func TestDecidePublishRequest_Approve(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	if _, err := service.AskForPublication(context.Background(), 1, 10, ""); err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}
	if err := service.DecidePublishRequest(context.Background(), 2, 10, models.RequestApproved); err != nil {
		t.Fatalf("одобрение не прошло: %v", err)
	}
	if store.docs[10].Status != models.DocumentPublished {
		t.Fatalf("документ должен стать PUBLISHED, статус: %s", store.docs[10].Status)
	}
}

func TestDecidePublishRequest_RejectBackToDraft(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	if _, err := service.AskForPublication(context.Background(), 1, 10, ""); err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}
	if err := service.DecidePublishRequest(context.Background(), 2, 10, models.RequestRejected); err != nil {
		t.Fatalf("отклонение не прошло: %v", err)
	}
	if store.docs[10].Status != models.DocumentDraft {
		t.Fatalf("документ должен вернуться в DRAFT, статус: %s", store.docs[10].Status)
	}

	// После отклонения автор может подать заявку снова.
	if _, err := service.AskForPublication(context.Background(), 1, 10, "вторая попытка"); err != nil {
		t.Fatalf("повторная заявка после отклонения не прошла: %v", err)
	}
}

func TestDecidePublishRequest_NoPending(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	err := service.DecidePublishRequest(context.Background(), 2, 10, models.RequestApproved)
	if apperrors.KindOf(err) != apperrors.KindState {
		t.Fatalf("ожидался State без pending-заявки, получено: %v", err)
	}
}

func TestDecidePublishRequest_NotModerator(t *testing.T) {
	store := seedStore()
	service := newPublishWorkflow(store)

	if _, err := service.AskForPublication(context.Background(), 1, 10, ""); err != nil {
		t.Fatalf("заявка не прошла: %v", err)
	}
	err := service.DecidePublishRequest(context.Background(), 1, 10, models.RequestApproved)
	if apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("ожидался Forbidden для немодератора, получено: %v", err)
	}
	if store.docs[10].Status != models.DocumentPending {
		t.Fatal("статус документа не должен меняться без прав")
	}
}
