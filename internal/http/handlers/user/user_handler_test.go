package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appuser "assustadus/internal/app/user"
	"assustadus/internal/domain/common"
	dom "assustadus/internal/domain/user"
	"assustadus/internal/logging"
)

type MockService struct{ mock.Mock }

var _ appuser.Service = (*MockService)(nil)

func (m *MockService) Create(ctx context.Context, input appuser.CreateUserInput) (*appuser.UserDto, error) {
	args := m.Called(ctx, input)
	dto, _ := args.Get(0).(*appuser.UserDto)
	return dto, args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]appuser.UserDto, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]appuser.UserDto)
	return list, args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id uuid.UUID) (*appuser.UserDto, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*appuser.UserDto)
	return dto, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id uuid.UUID, input appuser.UpdateUserInput) (*appuser.UserDto, error) {
	args := m.Called(ctx, id, input)
	dto, _ := args.Get(0).(*appuser.UserDto)
	return dto, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID) (*appuser.DeletedUserDto, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*appuser.DeletedUserDto)
	return dto, args.Error(1)
}

var userID = uuid.MustParse("21cede43-86e2-4da5-a8f3-115d84ced8a4")

func strPtr(s string) *string { return &s }

func sampleDTO() *appuser.UserDto {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &appuser.UserDto{
		ID:        userID,
		Email:     "test@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Phone:     strPtr("1234567890"),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func newTestRouter(svc appuser.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/users", NewHandler(svc, logging.NewNop()).Routes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Create(t *testing.T) {
	svc := &MockService{}
	svc.On("Create", mock.Anything, appuser.CreateUserInput{
		Email:     "test@example.com",
		FirstName: "John",
		LastName:  "Doe",
		Phone:     strPtr("1234567890"),
	}).Return(sampleDTO(), nil).Once()

	rec := do(t, newTestRouter(svc), http.MethodPost, "/users",
		`{"email":"test@example.com","firstName":"John","lastName":"Doe","phone":"1234567890"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, userID.String(), got["id"])
	assert.Equal(t, "test@example.com", got["email"])
	assert.Equal(t, "John", got["firstName"])
	assert.Equal(t, "Doe", got["lastName"])
	assert.Equal(t, "1234567890", got["phone"])
	assert.Equal(t, got["createdAt"], got["updatedAt"])
	svc.AssertExpectations(t)
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"email":"a@b.co","nickname":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation",
			body: `{"email":"nope","firstName":"John","lastName":"Doe"}`,
			svcErr: &common.ValidationError{Violations: []common.Violation{
				{Field: "email", Rule: "email", Message: "email must be a valid email address"},
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"a@b.co","firstName":"John","lastName":"Doe"}`,
			svcErr:     dom.ErrEmailConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "store failure",
			body:       `{"email":"a@b.co","firstName":"John","lastName":"Doe"}`,
			svcErr:     common.NewStoreError("create user", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			if tt.svcErr != nil {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.svcErr).Once()
			}

			rec := do(t, newTestRouter(svc), http.MethodPost, "/users", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			if tt.svcErr == nil {
				svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandler_List(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc := &MockService{}
		svc.On("List", mock.Anything).Return([]appuser.UserDto{}, nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodGet, "/users", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("users", func(t *testing.T) {
		svc := &MockService{}
		svc.On("List", mock.Anything).Return([]appuser.UserDto{*sampleDTO()}, nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodGet, "/users", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, userID.String(), got[0]["id"])
	})
}

func TestHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &MockService{}
		svc.On("GetByID", mock.Anything, userID).Return(sampleDTO(), nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodGet, "/users/"+userID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), userID.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockService{}
		svc.On("GetByID", mock.Anything, userID).Return(nil, dom.ErrNotFound).Once()

		rec := do(t, newTestRouter(svc), http.MethodGet, "/users/"+userID.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
	})

	t.Run("id that is not a uuid", func(t *testing.T) {
		svc := &MockService{}

		rec := do(t, newTestRouter(svc), http.MethodGet, "/users/42", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		svc := &MockService{}
		updated := sampleDTO()
		updated.FirstName = "Navas"
		updated.UpdatedAt = updated.CreatedAt.Add(time.Minute)

		svc.On("Update", mock.Anything, userID, appuser.UpdateUserInput{FirstName: strPtr("Navas")}).
			Return(updated, nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodPatch, "/users/"+userID.String(), `{"firstName":"Navas"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got appuser.UserDto
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Navas", got.FirstName)
		assert.Equal(t, "Doe", got.LastName)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockService{}
		svc.On("Update", mock.Anything, userID, mock.Anything).Return(nil, dom.ErrNotFound).Once()

		rec := do(t, newTestRouter(svc), http.MethodPatch, "/users/"+userID.String(), `{"lastName":"Smith"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("null phone clears it", func(t *testing.T) {
		svc := &MockService{}
		updated := sampleDTO()
		updated.Phone = nil

		svc.On("Update", mock.Anything, userID, appuser.UpdateUserInput{ClearPhone: true}).
			Return(updated, nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodPatch, "/users/"+userID.String(), `{"phone":null}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Contains(t, got, "phone")
		assert.Nil(t, got["phone"])
		svc.AssertExpectations(t)
	})

	t.Run("new phone", func(t *testing.T) {
		svc := &MockService{}
		svc.On("Update", mock.Anything, userID, appuser.UpdateUserInput{Phone: strPtr("555")}).
			Return(sampleDTO(), nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodPatch, "/users/"+userID.String(), `{"phone":"555"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty body refreshes only updatedAt", func(t *testing.T) {
		svc := &MockService{}
		svc.On("Update", mock.Anything, userID, appuser.UpdateUserInput{}).
			Return(sampleDTO(), nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodPatch, "/users/"+userID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("put is not routed", func(t *testing.T) {
		svc := &MockService{}

		rec := do(t, newTestRouter(svc), http.MethodPut, "/users/"+userID.String(), `{"lastName":"Smith"}`)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &MockService{}
		svc.On("Delete", mock.Anything, userID).Return(&appuser.DeletedUserDto{ID: userID}, nil).Once()

		rec := do(t, newTestRouter(svc), http.MethodDelete, "/users/"+userID.String(), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"`+userID.String()+`"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockService{}
		svc.On("Delete", mock.Anything, userID).Return(nil, dom.ErrNotFound).Once()

		rec := do(t, newTestRouter(svc), http.MethodDelete, "/users/"+userID.String(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
