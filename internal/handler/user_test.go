package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/mocks"
)

func TestHandleRegisterUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*mocks.MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			setupMocks:     func(mu *mocks.MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing username",
			reqBody:        RegisterUserRequest{},
			setupMocks:     func(mu *mocks.MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name:    "Duplicate username",
			reqBody: RegisterUserRequest{Username: "alice"},
			setupMocks: func(mu *mocks.MockUserService) {
				mu.On("Register", mock.Anything, "alice").Return(nil, domain.ErrDuplicateUsername)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDuplicateUsernameError,
		},
		{
			name:    "Success",
			reqBody: RegisterUserRequest{Username: "alice"},
			setupMocks: func(mu *mocks.MockUserService) {
				mu.On("Register", mock.Anything, "alice").Return(&domain.User{ID: userID, Username: "alice"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"alice"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := mocks.NewMockUserService(t)
			tt.setupMocks(mockUsers)

			var body bytes.Buffer
			if s, ok := tt.reqBody.(string); ok {
				body.WriteString(s)
			} else {
				_ = json.NewEncoder(&body).Encode(tt.reqBody)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", &body)
			rec := httptest.NewRecorder()

			HandleRegisterUser(mockUsers)(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleGetUser(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMocks     func(*mocks.MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid id",
			path:           "/users/not-a-uuid",
			setupMocks:     func(mu *mocks.MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidID,
		},
		{
			name: "Unknown user",
			path: "/users/" + userID.String(),
			setupMocks: func(mu *mocks.MockUserService) {
				mu.On("Get", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgUserNotFoundError,
		},
		{
			name: "Success",
			path: "/users/" + userID.String(),
			setupMocks: func(mu *mocks.MockUserService) {
				mu.On("Get", mock.Anything, userID).Return(&domain.User{ID: userID, Username: "alice"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := mocks.NewMockUserService(t)
			tt.setupMocks(mockUsers)

			r := chi.NewRouter()
			r.Get("/users/{id}", HandleGetUser(mockUsers))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
