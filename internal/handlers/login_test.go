package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/services"
	"github.com/pkruczek/accounts-chat/internal/sessions"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	type requestBody struct {
		username string
		password string
	}

	tests := []struct {
		name         string
		reqBody      requestBody
		mockSetup    func(svc *MockLoginer, store *MockSessionStore)
		expectedCode int
		rawBody      bool
	}{
		{
			name: "success",
			reqBody: requestBody{
				username: "john",
				password: "secret",
			},
			mockSetup: func(svc *MockLoginer, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Login(gomock.Any(), gomock.Any(), "john", "secret").
					Return(nil)
				store.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			reqBody: requestBody{
				username: "john",
				password: "wrong",
			},
			mockSetup: func(svc *MockLoginer, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Login(gomock.Any(), gomock.Any(), "john", "wrong").
					Return(services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "unknown username",
			reqBody: requestBody{
				username: "ghost",
				password: "secret",
			},
			mockSetup: func(svc *MockLoginer, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Login(gomock.Any(), gomock.Any(), "ghost", "secret").
					Return(services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "internal server error",
			reqBody: requestBody{
				username: "john",
				password: "secret",
			},
			mockSetup: func(svc *MockLoginer, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Login(gomock.Any(), gomock.Any(), "john", "secret").
					Return(errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "invalid json",
			rawBody:      true,
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			mockStore := NewMockSessionStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc, mockStore)
			}

			handler := NewLoginHandler(mockSvc, mockStore)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/accounts/login", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(models.LoginRequest{
					Username: tt.reqBody.username,
					Password: tt.reqBody.password,
				})
				req = httptest.NewRequest(http.MethodPost, "/accounts/login", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			// Failed logins carry no body that could leak which check failed.
			if tt.expectedCode == http.StatusUnauthorized {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}
