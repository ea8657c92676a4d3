package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"persona-admin/internal/service"
	service_mocks "persona-admin/internal/service/mocks"
)

func TestConversationHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := service_mocks.NewMockConversationService(ctrl)
	h := NewConversationHandler(conversations, nil)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	conversations.EXPECT().List(gomock.Any(), service.ConversationQuery{
		Page:        0,
		Size:        2,
		PersonaCode: "demo_bot",
		StartDate:   "2024-05-01",
	}).Return(service.NewConversationPage([]service.Conversation{
		{ID: 5, PersonaCode: "demo_bot", UserQuery: "q5", AIResponse: "a5", UserID: "u1", CreatedAt: at},
		{ID: 4, PersonaCode: "demo_bot", UserQuery: "q4", AIResponse: "a4", UserID: "u2", CreatedAt: at},
	}, 0, 2, 5))

	rec, env := serve(t, http.MethodGet, "/admin/conversations",
		"/admin/conversations?page=0&size=2&personaCode=demo_bot&startDate=2024-05-01", nil, h.List)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got ConversationPageDTO
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if got.TotalElements != 5 || got.TotalPages != 3 || !got.First || !got.HasNext || len(got.Conversations) != 2 {
		t.Errorf("page = %+v", got)
	}
	if got.Conversations[0].CreatedAt != "2024-05-01T12:00:00" {
		t.Errorf("createdAt = %q", got.Conversations[0].CreatedAt)
	}
}

func TestConversationHandler_ListDefaultsAndBadParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := service_mocks.NewMockConversationService(ctrl)
	h := NewConversationHandler(conversations, nil)

	conversations.EXPECT().List(gomock.Any(), service.ConversationQuery{Size: service.DefaultPageSize}).
		Return(service.NewConversationPage(nil, 0, service.DefaultPageSize, 0))

	rec, env := serve(t, http.MethodGet, "/admin/conversations", "/admin/conversations", nil, h.List)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(string(env.Data), `"conversations":[]`) {
		t.Errorf("data = %s, want empty conversations array", env.Data)
	}

	for _, target := range []string{"/admin/conversations?page=x", "/admin/conversations?size=big"} {
		if rec, _ := serve(t, http.MethodGet, "/admin/conversations", target, nil, h.List); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestConversationHandler_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := service_mocks.NewMockConversationService(ctrl)
	h := NewConversationHandler(conversations, nil)

	conversations.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c service.Conversation) (*service.Conversation, error) {
			if c.CreatedAt != time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) {
				t.Errorf("CreatedAt = %v", c.CreatedAt)
			}
			c.ID = 42
			return &c, nil
		})

	body := RecordConversationRequest{
		PersonaCode: "demo_bot",
		UserQuery:   "How do I deploy?",
		AIResponse:  "Run make deploy.",
		UserID:      "u1",
		CreatedAt:   "2024-05-01T08:00:00",
	}
	rec, env := serve(t, http.MethodPost, "/admin/conversations", "/admin/conversations", body, h.Record)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(string(env.Data), `"id":42`) {
		t.Errorf("data = %s", env.Data)
	}

	body.CreatedAt = "yesterday"
	if rec, _ := serve(t, http.MethodPost, "/admin/conversations", "/admin/conversations", body, h.Record); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad createdAt", rec.Code)
	}
}

func TestConversationHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analysis := service_mocks.NewMockAnalysisService(ctrl)
	h := NewConversationHandler(nil, analysis)

	tests := []struct {
		name       string
		target     string
		mockSetup  func()
		wantStatus int
		wantData   string
	}{
		{
			name:   "markdown report",
			target: "/admin/conversations/stats?personaCode=demo_bot&period=7days",
			mockSetup: func() {
				analysis.EXPECT().Analysis(gomock.Any(), "demo_bot", "7days").Return("# Report\n\n- **Total**: 3", nil)
			},
			wantStatus: http.StatusOK,
			wantData:   "# Report",
		},
		{
			name:   "html report",
			target: "/admin/conversations/stats?format=html",
			mockSetup: func() {
				analysis.EXPECT().Analysis(gomock.Any(), "", "").Return("# Report\n\n- **Total**: 3", nil)
			},
			wantStatus: http.StatusOK,
			wantData:   "<strong>Total</strong>",
		},
		{
			name:   "store failure",
			target: "/admin/conversations/stats",
			mockSetup: func() {
				analysis.EXPECT().Analysis(gomock.Any(), "", "").Return("", errors.New("no such table: conversations"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rec, env := serve(t, http.MethodGet, "/admin/conversations/stats", tt.target, nil, h.Stats)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantData == "" {
				return
			}
			var data string
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("failed to decode data: %v", err)
			}
			if !strings.Contains(data, tt.wantData) {
				t.Errorf("data = %q, want it to contain %q", data, tt.wantData)
			}
		})
	}
}

func TestConversationHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analysis := service_mocks.NewMockAnalysisService(ctrl)
	h := NewConversationHandler(nil, analysis)

	analysis.EXPECT().Summary(gomock.Any(), "demo_bot").Return(service.NoDataReport, nil)

	rec, env := serve(t, http.MethodGet, "/admin/conversations/summary", "/admin/conversations/summary?personaCode=demo_bot", nil, h.Summary)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Message != "Conversation summary loaded successfully" {
		t.Errorf("message = %q", env.Message)
	}
}
