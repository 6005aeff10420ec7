package models

import (
	"testing"

	"archivio/internal/apperrors"
)

func TestTagChangeRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     *TagChangeRequest
		wantErr bool
	}{
		{
			name:    "ADD существующего тега",
			req:     NewRequestForExistingTag(1, "barocco", TagOperationAdd),
			wantErr: false,
		},
		{
			name:    "ADD нового label",
			req:     NewRequestForNewLabel(1, "romantic"),
			wantErr: false,
		},
		{
			name:    "REMOVE существующего тега",
			req:     NewRequestForExistingTag(1, "barocco", TagOperationRemove),
			wantErr: false,
		},
		{
			name: "оба label заполнены",
			req: &TagChangeRequest{
				Status: RequestPending, DocumentID: 1, Operation: TagOperationAdd,
				ExistingTagLabel: "barocco", ProposedLabel: "romantic",
			},
			wantErr: true,
		},
		{
			name: "оба label пусты",
			req: &TagChangeRequest{
				Status: RequestPending, DocumentID: 1, Operation: TagOperationAdd,
			},
			wantErr: true,
		},
		{
			name: "REMOVE с предложенным label",
			req: &TagChangeRequest{
				Status: RequestPending, DocumentID: 1, Operation: TagOperationRemove,
				ProposedLabel: "romantic",
			},
			wantErr: true,
		},
		{
			name: "неизвестная операция",
			req: &TagChangeRequest{
				Status: RequestPending, DocumentID: 1, Operation: "RENAME",
				ExistingTagLabel: "barocco",
			},
			wantErr: true,
		},
		{
			name:    "без документа",
			req:     NewRequestForExistingTag(0, "barocco", TagOperationAdd),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("ожидалась ошибка валидации")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("валидация не должна падать: %v", err)
			}
			if tc.wantErr && apperrors.KindOf(err) != apperrors.KindValidation {
				t.Fatalf("ожидался вид VALIDATION, получено: %v", apperrors.KindOf(err))
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := NormalizeLabel("  Barocco "); got != "barocco" {
		t.Fatalf("ожидалось barocco, получено: %q", got)
	}
	if NormalizeLabel("ROMANTIC") != NormalizeLabel("romantic") {
		t.Fatal("нормализация должна быть регистронезависимой")
	}
}
