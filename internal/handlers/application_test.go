package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/jobdesk/internal/models"
	"github.com/thereayou/jobdesk/internal/services"
	"gorm.io/gorm"
)

type mockApplicationStore struct {
	mock.Mock
}

func (m *mockApplicationStore) GetJob(id uuid.UUID) (*models.Job, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *mockApplicationStore) FindApplication(userID, jobID uuid.UUID) (*models.Application, error) {
	args := m.Called(userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *mockApplicationStore) SaveApplication(application *models.Application) error {
	args := m.Called(application)
	return args.Error(0)
}

func newApplicationEnv(apps *mockApplicationStore, chats *services.MockStore) *ApplicationHandler {
	access := services.NewAccessControl(chats)
	svc := services.NewChatService(chats, nil, access)
	return NewApplicationHandler(apps, svc)
}

func TestApply_FirstApplicationOpensChat(t *testing.T) {
	apps := &mockApplicationStore{}
	chats := &services.MockStore{}
	defer apps.AssertExpectations(t)
	defer chats.AssertExpectations(t)
	h := newApplicationEnv(apps, chats)

	userID, companyID, jobID := uuid.New(), uuid.New(), uuid.New()
	job := &models.Job{ID: jobID, CompanyID: companyID, Title: "Go developer"}
	chat := testChat(userID, companyID)

	apps.On("GetJob", jobID).Return(job, nil).Once()
	apps.On("FindApplication", userID, jobID).Return(nil, gorm.ErrRecordNotFound).Once()
	apps.On("SaveApplication", mock.AnythingOfType("*models.Application")).Run(func(args mock.Arguments) {
		application := args.Get(0).(*models.Application)
		assert.Equal(t, userID, application.UserID)
		assert.Equal(t, jobID, application.JobID)
		assert.Equal(t, models.ApplicationPending, application.Status)
	}).Return(nil).Once()
	chats.On("GetUser", userID).Return(&models.User{ID: userID}, nil).Once()
	chats.On("GetCompany", companyID).Return(&models.Company{ID: companyID}, nil).Once()
	chats.On("GetChatByPair", userID, companyID).Return(nil, gorm.ErrRecordNotFound).Once()
	chats.On("CreateChatWithParticipants", userID, companyID).Return(chat, nil).Once()

	r := gin.New()
	r.POST("/application/:jobId", fakeAuth(userID), h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/application/"+jobID.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message string    `json:"message"`
		ChatID  uuid.UUID `json:"chatId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, chat.ID, resp.ChatID)
}

func TestApply_DuplicateApplicationStillReportsChat(t *testing.T) {
	apps := &mockApplicationStore{}
	chats := &services.MockStore{}
	defer apps.AssertExpectations(t)
	defer chats.AssertExpectations(t)
	h := newApplicationEnv(apps, chats)

	userID, companyID := uuid.New(), uuid.New()
	jobID := uuid.New()
	chat := testChat(userID, companyID)

	apps.On("GetJob", jobID).Return(&models.Job{ID: jobID, CompanyID: companyID}, nil).Once()
	apps.On("FindApplication", userID, jobID).Return(&models.Application{
		ID: uuid.New(), UserID: userID, JobID: jobID, Status: models.ApplicationPending,
	}, nil).Once()
	chats.On("GetUser", userID).Return(&models.User{ID: userID}, nil).Once()
	chats.On("GetCompany", companyID).Return(&models.Company{ID: companyID}, nil).Once()
	chats.On("GetChatByPair", userID, companyID).Return(chat, nil).Once()

	r := gin.New()
	r.POST("/application/:jobId", fakeAuth(userID), h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/application/"+jobID.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	apps.AssertNotCalled(t, "SaveApplication", mock.Anything)
	chats.AssertNotCalled(t, "CreateChatWithParticipants", mock.Anything, mock.Anything)

	var resp struct {
		Error  string    `json:"error"`
		ChatID uuid.UUID `json:"chatId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "already applied")
	assert.Equal(t, chat.ID, resp.ChatID)
}

func TestApply_ConcurrentDoubleSubmit(t *testing.T) {
	apps := &mockApplicationStore{}
	chats := &services.MockStore{}
	defer apps.AssertExpectations(t)
	defer chats.AssertExpectations(t)
	h := newApplicationEnv(apps, chats)

	userID, companyID := uuid.New(), uuid.New()
	jobID := uuid.New()
	chat := testChat(userID, companyID)

	apps.On("GetJob", jobID).Return(&models.Job{ID: jobID, CompanyID: companyID}, nil).Once()
	apps.On("FindApplication", userID, jobID).Return(nil, gorm.ErrRecordNotFound).Once()
	apps.On("SaveApplication", mock.AnythingOfType("*models.Application")).Return(gorm.ErrDuplicatedKey).Once()
	chats.On("GetUser", userID).Return(&models.User{ID: userID}, nil).Once()
	chats.On("GetCompany", companyID).Return(&models.Company{ID: companyID}, nil).Once()
	chats.On("GetChatByPair", userID, companyID).Return(chat, nil).Once()

	r := gin.New()
	r.POST("/application/:jobId", fakeAuth(userID), h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/application/"+jobID.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already applied")
	assert.Contains(t, rr.Body.String(), chat.ID.String())
}

func TestApply_ChatFailureStoresNothing(t *testing.T) {
	apps := &mockApplicationStore{}
	chats := &services.MockStore{}
	defer apps.AssertExpectations(t)
	defer chats.AssertExpectations(t)
	h := newApplicationEnv(apps, chats)

	userID, companyID := uuid.New(), uuid.New()
	jobID := uuid.New()

	apps.On("GetJob", jobID).Return(&models.Job{ID: jobID, CompanyID: companyID}, nil).Once()
	chats.On("GetUser", userID).Return(&models.User{ID: userID}, nil).Once()
	chats.On("GetCompany", companyID).Return(nil, gorm.ErrInvalidDB).Once()

	r := gin.New()
	r.POST("/application/:jobId", fakeAuth(userID), h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/application/"+jobID.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// No application row is written when the chat cannot be resolved, so a
	// retry starts clean instead of running into the duplicate guard.
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	apps.AssertNotCalled(t, "FindApplication", mock.Anything, mock.Anything)
	apps.AssertNotCalled(t, "SaveApplication", mock.Anything)
}

func TestApply_UnknownJob(t *testing.T) {
	apps := &mockApplicationStore{}
	chats := &services.MockStore{}
	defer apps.AssertExpectations(t)
	h := newApplicationEnv(apps, chats)

	jobID := uuid.New()
	apps.On("GetJob", jobID).Return(nil, gorm.ErrRecordNotFound).Once()

	r := gin.New()
	r.POST("/application/:jobId", fakeAuth(uuid.New()), h.Apply)

	req := httptest.NewRequest(http.MethodPost, "/application/"+jobID.String(), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	apps.AssertNotCalled(t, "SaveApplication", mock.Anything)
}
