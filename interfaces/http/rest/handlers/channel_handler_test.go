package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"forum-backend/application/services"
	"forum-backend/domain/forum"
	"forum-backend/pkg/auth"
	appErrors "forum-backend/pkg/errors"
	"forum-backend/tests/mocks"
)

// claimsInjector substitutes the auth middleware in handler tests.
func claimsInjector(claims *auth.Claims) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{Subject: "alice", Roles: []auth.Role{auth.RoleAdmin}}
}

func userClaims() *auth.Claims {
	return &auth.Claims{Subject: "bob", Roles: []auth.Role{auth.RoleUser}}
}

func newChannelRouter(channels *mocks.MockChannelRepository, claims *auth.Claims) http.Handler {
	handler := NewChannelHandler(services.NewChannelService(channels, zap.NewNop()), zap.NewNop())

	r := chi.NewRouter()
	r.Use(claimsInjector(claims))
	r.Post("/channels", handler.Create)
	r.Get("/channels", handler.List)
	r.Get("/channels/{channelId}", handler.Get)
	r.Get("/channels/{channelId}/members", handler.Members)
	r.Put("/channels/{channelId}", handler.AddParticipant)
	r.Delete("/channels/{channelId}", handler.Delete)
	return r
}

func TestChannelHandlerCreate_Returns201(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Create", mock.Anything, mock.AnythingOfType("*forum.Channel")).Return(nil)
	router := newChannelRouter(channels, adminClaims())

	body := `{"name":"General Topics","visibility":"PUBLIC","createdBy":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"channelId":"general-topics"`)
}

func TestChannelHandlerCreate_InvalidBody(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	channels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChannelHandlerCreate_NameTooLong(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	router := newChannelRouter(channels, adminClaims())

	body := `{"name":"` + strings.Repeat("x", 41) + `","visibility":"PUBLIC","createdBy":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChannelHandlerCreate_DuplicateConflicts(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Create", mock.Anything, mock.Anything).Return(appErrors.NewConflictError("channel already exists"))
	router := newChannelRouter(channels, adminClaims())

	body := `{"name":"General","visibility":"PUBLIC","createdBy":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestChannelHandlerCreate_NonAdminForbidden(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	router := newChannelRouter(channels, userClaims())

	body := `{"name":"General","visibility":"PUBLIC","createdBy":"bob"}`
	req := httptest.NewRequest(http.MethodPost, "/channels", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	channels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChannelHandlerDelete_NotEmptyConflicts(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Delete", mock.Anything, "general").Return(appErrors.NewConflictError("channel is not empty"))
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodDelete, "/channels/general", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "channel is not empty")
}

func TestChannelHandlerDelete_Empty204(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Delete", mock.Anything, "general").Return(nil)
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodDelete, "/channels/general", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChannelHandlerAddParticipant_Returns204(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Get", mock.Anything, "staff").Return(&forum.Channel{ChannelID: "staff"}, nil)
	channels.On("AddParticipant", mock.Anything, "staff", forum.Participant{Name: "carol"}).Return(nil)
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodPut, "/channels/staff", strings.NewReader(`{"name":"carol"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChannelHandlerMembers_ReturnsParticipants(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Get", mock.Anything, "staff").Return(&forum.Channel{
		ChannelID:    "staff",
		Participants: []forum.Participant{{Name: "alice", IsOwner: true}, {Name: "carol"}},
	}, nil)
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodGet, "/channels/staff/members", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)
	assert.Contains(t, rec.Body.String(), `"carol"`)
}

func TestChannelHandlerGet_Missing404(t *testing.T) {
	channels := new(mocks.MockChannelRepository)
	channels.On("Get", mock.Anything, "ghost").Return(nil, appErrors.NewNotFoundError("channel"))
	router := newChannelRouter(channels, adminClaims())

	req := httptest.NewRequest(http.MethodGet, "/channels/ghost", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
