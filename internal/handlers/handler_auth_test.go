package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finvault/fin_statements_app/internal/apperrors"
	"github.com/finvault/fin_statements_app/internal/core/domain"
	portssvc "github.com/finvault/fin_statements_app/internal/core/ports/services"
	"github.com/finvault/fin_statements_app/internal/dto"
	"github.com/finvault/fin_statements_app/internal/handlers"
	"github.com/finvault/fin_statements_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *MockUserService
	jwtSecret       string
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "fsa-test",
		AuthRateLimit:     "100-S",
		IsProduction:      true,
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:      suite.mockUserService,
		Statement: new(MockStatementService),
	})
}

func (suite *AuthHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req, _ := http.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	user := &domain.User{
		UserID: uuid.NewString(),
		Name:   "Alice",
		Email:  "alice@example.com",
	}
	suite.mockUserService.On("CreateUser", mock.Anything,
		mock.MatchedBy(func(req dto.CreateUserRequest) bool {
			return req.Email == user.Email && req.Name == user.Name
		}),
	).Return(user, nil).Once()

	w := suite.postJSON("/api/v1/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "s3cret-password"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.UserID)
	suite.Equal(user.Email, resp.Email)
	// The password hash never appears in the payload.
	suite.NotContains(w.Body.String(), "password")
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/auth/register",
		gin.H{"name": "Alice", "email": "alice@example.com", "password": "s3cret-password"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	w := suite.postJSON("/api/v1/auth/register",
		gin.H{"name": "Alice", "email": "not-an-email", "password": "short"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{
		UserID: uuid.NewString(),
		Name:   "Alice",
		Email:  "alice@example.com",
	}
	suite.mockUserService.On("AuthenticateUser", mock.Anything, user.Email, "s3cret-password").
		Return(user, nil).Once()

	w := suite.postJSON("/api/v1/auth/login",
		gin.H{"email": user.Email, "password": "s3cret-password"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.User.UserID)
	suite.Require().NotEmpty(resp.Token)

	// The issued token must be valid for this user.
	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(suite.jwtSecret), nil
	})
	suite.Require().NoError(err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "alice@example.com", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login",
		gin.H{"email": "alice@example.com", "password": "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestGetProfile_Success() {
	user := &domain.User{
		UserID: uuid.NewString(),
		Name:   "Alice",
		Email:  "alice@example.com",
	}
	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	claims := jwt.RegisteredClaims{
		Issuer:    "fsa-test",
		Subject:   user.UserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.UserID)
}

func (suite *AuthHandlerTestSuite) TestGetProfile_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestHealthCheck() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

// --- Run Test Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
