package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pkruczek/accounts-chat/internal/middlewares"
	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/sessions"
)

func TestConversationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sentAt := time.Date(2025, 9, 26, 12, 0, 0, 0, time.UTC)
	messages := []models.MessageDB{
		{MessageID: 2, SenderID: 2, ReceiverID: 7, Content: "hi back", SentAt: sentAt.Add(time.Minute), IsNew: true},
		{MessageID: 1, SenderID: 7, ReceiverID: 2, Content: "hi", SentAt: sentAt, IsNew: false},
	}

	tests := []struct {
		name         string
		sess         *sessions.Session
		target       string
		mockSetup    func(svc *MockConversationGetter)
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "success",
			sess:   authenticatedSession(7),
			target: "/accounts/messages/2",
			mockSetup: func(svc *MockConversationGetter) {
				svc.EXPECT().
					Conversation(gomock.Any(), int64(7), int64(2)).
					Return(messages, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:   "empty conversation",
			sess:   authenticatedSession(7),
			target: "/accounts/messages/3",
			mockSetup: func(svc *MockConversationGetter) {
				svc.EXPECT().
					Conversation(gomock.Any(), int64(7), int64(3)).
					Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "not authenticated",
			sess:         sessions.New(),
			target:       "/accounts/messages/2",
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "non numeric id",
			sess:         authenticatedSession(7),
			target:       "/accounts/messages/abc",
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "internal server error",
			sess:   authenticatedSession(7),
			target: "/accounts/messages/2",
			mockSetup: func(svc *MockConversationGetter) {
				svc.EXPECT().
					Conversation(gomock.Any(), int64(7), int64(2)).
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockConversationGetter(ctrl)
			mockStore := NewMockSessionStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			// Routed the same way as in main: the numeric pattern rejects
			// garbage ids before the handler runs.
			r := chi.NewRouter()
			r.Group(func(r chi.Router) {
				r.Use(middlewares.AuthMiddleware(mockStore))
				r.Get("/accounts/messages/{receiverID:[0-9]+}", NewConversationHandler(mockSvc))
			})

			mockStore.EXPECT().
				Load(gomock.Any(), gomock.Any()).
				Return(tt.sess, nil).
				AnyTimes()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var views []models.MessageView
				err := json.Unmarshal(rr.Body.Bytes(), &views)
				assert.NoError(t, err)
				assert.Len(t, views, tt.expectedLen)
				for i := range views {
					assert.Equal(t, messages[i].View(), views[i])
				}
			}
		})
	}
}
