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
	"github.com/pkruczek/accounts-chat/internal/sessions"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	type requestBody struct {
		username string
		password string
		email    string
	}

	tests := []struct {
		name         string
		reqBody      requestBody
		mockSetup    func(svc *MockRegistrationBeginner, store *MockSessionStore)
		expectedCode int
		expectedBody map[string][]string
		rawBody      bool // if true, pass raw body (to simulate invalid JSON)
	}{
		{
			name: "success",
			reqBody: requestBody{
				username: "john",
				password: "secret",
				email:    "john@example.com",
			},
			mockSetup: func(svc *MockRegistrationBeginner, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Begin(gomock.Any(), gomock.Any(), "john", "secret", "john@example.com").
					Return(nil)
				store.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name: "missing username and password",
			reqBody: requestBody{
				email: "john@example.com",
			},
			mockSetup: func(svc *MockRegistrationBeginner, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Begin(gomock.Any(), gomock.Any(), "", "", "john@example.com").
					Return(validation.Errors{
						"username": {validation.MsgRequired},
						"password": {validation.MsgRequired},
					})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string][]string{
				"username": {"This field is required."},
				"password": {"This field is required."},
			},
		},
		{
			name: "username taken",
			reqBody: requestBody{
				username: "alice",
				password: "pass",
			},
			mockSetup: func(svc *MockRegistrationBeginner, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Begin(gomock.Any(), gomock.Any(), "alice", "pass", "").
					Return(validation.Errors{"username": {validation.MsgUnique}})
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string][]string{
				"username": {"This field must be unique."},
			},
		},
		{
			name: "internal server error",
			reqBody: requestBody{
				username: "bob",
				password: "pass",
			},
			mockSetup: func(svc *MockRegistrationBeginner, store *MockSessionStore) {
				store.EXPECT().
					Load(gomock.Any(), gomock.Any()).
					Return(sessions.New(), nil)
				svc.EXPECT().
					Begin(gomock.Any(), gomock.Any(), "bob", "pass", "").
					Return(errors.New("database failure"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "invalid json",
			rawBody:      true,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string][]string{
				"non_field_errors": {"Invalid request body."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegistrationBeginner(ctrl)
			mockStore := NewMockSessionStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc, mockStore)
			}

			handler := NewRegisterHandler(mockSvc, mockStore)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/accounts/register", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(models.RegisterRequest{
					Username: tt.reqBody.username,
					Password: tt.reqBody.password,
					Email:    tt.reqBody.email,
				})
				req = httptest.NewRequest(http.MethodPost, "/accounts/register", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedBody != nil {
				var resp map[string][]string
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestRegisterHandler_SetsSessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegistrationBeginner(ctrl)
	mockStore := NewMockSessionStore(ctrl)

	mockStore.EXPECT().
		Load(gomock.Any(), gomock.Any()).
		Return(sessions.New(), nil)
	mockSvc.EXPECT().
		Begin(gomock.Any(), gomock.Any(), "john", "secret", "").
		Return(nil)
	mockStore.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, w http.ResponseWriter, _ *sessions.Session) error {
			http.SetCookie(w, &http.Cookie{Name: sessions.CookieName, Value: "token"})
			return nil
		})

	handler := NewRegisterHandler(mockSvc, mockStore)

	bodyBytes, _ := json.Marshal(models.RegisterRequest{Username: "john", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/register", bytes.NewBuffer(bodyBytes))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)

	cookies := rr.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, sessions.CookieName, cookies[0].Name)
	}
}
