package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	passwordCost = bcrypt.DefaultCost
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	randRead = rand.Read
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newUUID = uuid.NewString

	createUser = store.CreateUser
	ensureWallet = store.EnsureWallet
	lockWallet = store.LockWallet
	setWalletBalance = store.SetWalletBalance
	insertWalletTransaction = store.InsertWalletTransaction

	getCourseByID = store.GetCourseByID
	getEnrollment = store.GetEnrollment
	getOrderByIdempotencyKey = store.GetOrderByIdempotencyKey
	getOrderForUpdate = store.GetOrderForUpdate
	createOrder = store.CreateOrder
	setOrderStatus = store.SetOrderStatus
	activateEnrollment = store.ActivateEnrollment
	revokeEnrollment = store.RevokeEnrollment
	expirePendingOrders = store.ExpirePendingOrders

	getLesson = store.GetLesson
	markLessonComplete = store.MarkLessonComplete
	countPublishedLessons = store.CountPublishedLessons
	countCompletedLessons = store.CountCompletedLessons
	updateEnrollmentProgress = store.UpdateEnrollmentProgress
	createCertificate = store.CreateCertificate

	listSettings = store.ListSettings
	upsertSetting = store.UpsertSetting
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	passwordCost = bcrypt.MinCost
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.ErrorIs(t, ComparePassword(hash, "other"), ErrInvalidCredentials)
	require.Error(t, ComparePassword("not-a-hash", pwd))
	require.NotErrorIs(t, ComparePassword("not-a-hash", pwd), ErrInvalidCredentials)

	// 25 個字元但 75 bytes
	_, err = HashPassword(strings.Repeat("密", 25))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	active := model.User{PasswordHash: hash, IsActive: true}
	require.NoError(t, AuthenticateUser(context.Background(), active, "pw"))
	require.ErrorIs(t, AuthenticateUser(context.Background(), active, "bad"), ErrInvalidCredentials)
	require.ErrorIs(t, AuthenticateUser(context.Background(), model.User{IsActive: true}, ""), ErrInvalidCredentials)

	inactive := model.User{PasswordHash: hash}
	require.ErrorIs(t, AuthenticateUser(context.Background(), inactive, "pw"), ErrInactiveUser)
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("JWT_SECRET", "")
	_, err := IssueAccessToken(model.User{}, time.Minute)
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	fixed := time.Now().Truncate(time.Second)
	timeNow = func() time.Time { return fixed }
	tok, err := IssueAccessToken(model.User{ID: 5, IsAdmin: true, IsSuperAdmin: true}, time.Minute)
	require.NoError(t, err)

	claims := &CustomClaims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, 5, claims.UserID)
	require.True(t, claims.IsAdmin)
	require.True(t, claims.IsSuperAdmin)
	require.True(t, claims.HasAdminAccess())
	require.Equal(t, "5", claims.Subject)
	require.True(t, claims.ExpiresAt.Time.Equal(fixed.Add(time.Minute)))
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("JWT_SECRET", "")
	_, err := VerifyAccessToken("abc")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s")
	_, err = VerifyAccessToken("invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"foo": "bar"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken(tokNone)
	require.Error(t, err)

	expired, err := IssueAccessToken(model.User{ID: 3}, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyAccessToken(expired)
	require.Error(t, err)

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("whatever")
	require.Error(t, err)

	parseWithClaims = jwt.ParseWithClaims
	tok, _ := IssueAccessToken(model.User{ID: 3}, time.Minute)
	claims, err := VerifyAccessToken(tok)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)
	require.False(t, claims.HasAdminAccess())
}
