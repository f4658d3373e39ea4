package services

import (
	"testing"
	"time"

	"restaurant/entity"
	"restaurant/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	db := testdb.Open(t)
	svc := NewUserService(db)

	u, err := svc.Create(UserInput{Username: "sam", Email: "Sam@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role)
	assert.Equal(t, "sam@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	got, err := svc.Authenticate("sam", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate("sam", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate("nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_CreateRejectsDuplicates(t *testing.T) {
	db := testdb.Open(t)
	svc := NewUserService(db)
	_, err := svc.Create(UserInput{Username: "sam", Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Create(UserInput{Username: "sam", Email: "other@example.com", Password: "secret1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username is already taken. Please choose a different one.", verr.Fields["username"])

	_, err = svc.Create(UserInput{Username: "max", Email: "sam@example.com", Password: "secret1"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email is already registered. Please use a different one.", verr.Fields["email"])
}

func TestUserService_CreateValidates(t *testing.T) {
	db := testdb.Open(t)
	svc := NewUserService(db)

	_, err := svc.Create(UserInput{Username: "s", Email: "", Password: "123", Role: "owner"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
}

func TestUserService_SetPasswordAndDelete(t *testing.T) {
	db := testdb.Open(t)
	svc := NewUserService(db)
	u, err := svc.Create(UserInput{Username: "sam", Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(u.ID, "newpass", entity.RoleManager))
	got, err := svc.Authenticate("sam", "newpass")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, got.Role)

	assert.ErrorIs(t, svc.SetPassword(9999, "newpass", ""), ErrNotFound)

	table := seedTable(t, db, 1, 2)
	require.NoError(t, db.Create(&entity.Order{TableID: table.ID, UserID: u.ID, Status: entity.OrderPending}).Error)
	assert.ErrorIs(t, svc.Delete(u.ID), ErrInUse)

	other, err := svc.Create(UserInput{Username: "kim", Email: "kim@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(other.ID))
	_, err = svc.Get(other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	db := testdb.Open(t)
	users := NewUserService(db)
	auth := NewAuthService(users, "test-secret", time.Hour)

	_, err := auth.Register("sam", "sam@example.com", "secret1")
	require.NoError(t, err)

	token, user, err := auth.Login("sam", "secret1")
	require.NoError(t, err)
	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)

	_, _, err = auth.Login("sam", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
