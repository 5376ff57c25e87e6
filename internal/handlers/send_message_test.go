package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/sessions"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

func TestSendMessageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sentAt := time.Date(2025, 9, 26, 12, 0, 0, 0, time.UTC)
	stored := &models.MessageDB{
		MessageID:  10,
		SenderID:   7,
		ReceiverID: 2,
		Content:    "Foo Bar",
		SentAt:     sentAt,
		IsNew:      true,
	}

	tests := []struct {
		name         string
		sess         *sessions.Session
		reqBody      models.SendMessageRequest
		mockSetup    func(svc *MockMessageSender)
		expectedCode int
		expectedErrs map[string][]string
		rawBody      bool
	}{
		{
			name: "success",
			sess: authenticatedSession(7),
			reqBody: models.SendMessageRequest{
				Receiver: 2,
				Content:  "Foo Bar",
			},
			mockSetup: func(svc *MockMessageSender) {
				svc.EXPECT().
					Send(gomock.Any(), int64(7), int64(2), "Foo Bar").
					Return(stored, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "blank content",
			sess: authenticatedSession(7),
			reqBody: models.SendMessageRequest{
				Receiver: 2,
				Content:  "   ",
			},
			mockSetup: func(svc *MockMessageSender) {
				svc.EXPECT().
					Send(gomock.Any(), int64(7), int64(2), "   ").
					Return(nil, validation.Errors{"content": {validation.MsgBlank}})
			},
			expectedCode: http.StatusBadRequest,
			expectedErrs: map[string][]string{
				"content": {"This field may not be blank."},
			},
		},
		{
			name: "unknown receiver",
			sess: authenticatedSession(7),
			reqBody: models.SendMessageRequest{
				Receiver: 99,
				Content:  "hello",
			},
			mockSetup: func(svc *MockMessageSender) {
				svc.EXPECT().
					Send(gomock.Any(), int64(7), int64(99), "hello").
					Return(nil, validation.Errors{"receiver": {validation.MsgInvalidPK(99)}})
			},
			expectedCode: http.StatusBadRequest,
			expectedErrs: map[string][]string{
				"receiver": {`Invalid pk "99" - object does not exist.`},
			},
		},
		{
			name:         "not authenticated",
			sess:         sessions.New(),
			reqBody:      models.SendMessageRequest{Receiver: 2, Content: "hello"},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "internal server error",
			sess: authenticatedSession(7),
			reqBody: models.SendMessageRequest{
				Receiver: 2,
				Content:  "hello",
			},
			mockSetup: func(svc *MockMessageSender) {
				svc.EXPECT().
					Send(gomock.Any(), int64(7), int64(2), "hello").
					Return(nil, errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "invalid json",
			sess:         authenticatedSession(7),
			rawBody:      true,
			expectedCode: http.StatusBadRequest,
			expectedErrs: map[string][]string{
				"non_field_errors": {"Invalid request body."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockMessageSender(ctrl)
			mockStore := NewMockSessionStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewSendMessageHandler(mockSvc)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/accounts/messages", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/accounts/messages", bytes.NewBuffer(bodyBytes))
			}

			rr := serveAuthenticated(t, mockStore, tt.sess, handler, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedErrs != nil {
				var resp map[string][]string
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedErrs, resp)
			}

			if tt.expectedCode == http.StatusCreated {
				var view models.MessageView
				err := json.Unmarshal(rr.Body.Bytes(), &view)
				assert.NoError(t, err)
				assert.Equal(t, stored.View(), view)
			}
		})
	}
}
