package main

import (
	"bytes"
	"strings"
	"testing"

	"restaurant/entity"
	"restaurant/pkg/testdb"
	"restaurant/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, users *services.UserService, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func() (*services.UserService, error) { return users, nil })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateAndList(t *testing.T) {
	users := services.NewUserService(testdb.Open(t))

	out, err := run(t, users, "", "create", "root", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, `created user "root"`)
	assert.Contains(t, out, "role admin")

	// password from stdin
	out, err = run(t, users, "hunter22\n", "create", "chef", "--email", "chef@example.com", "--role", entity.RoleChef)
	require.NoError(t, err)
	assert.Contains(t, out, "role chef")
	_, err = users.Authenticate("chef", "hunter22")
	require.NoError(t, err)

	out, err = run(t, users, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "root@example.com")
	assert.Contains(t, out, "chef@example.com")
}

func TestCreate_Rejects(t *testing.T) {
	users := services.NewUserService(testdb.Open(t))

	_, err := run(t, users, "", "create", "root", "--password", "secret1")
	assert.Error(t, err, "email is required")

	_, err = run(t, users, "", "create", "root", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)
	_, err = run(t, users, "", "create", "root", "--email", "x@example.com", "--password", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staffctl passwd root")

	_, err = run(t, users, "", "create", "other", "--email", "o@example.com", "--password", "secret1", "--role", "owner")
	assert.Error(t, err)
}

func TestPasswd(t *testing.T) {
	users := services.NewUserService(testdb.Open(t))
	_, err := run(t, users, "", "create", "sam", "--email", "sam@example.com", "--password", "secret1", "--role", entity.RoleStaff)
	require.NoError(t, err)

	out, err := run(t, users, "", "passwd", "sam", "--password", "changed1")
	require.NoError(t, err)
	assert.Contains(t, out, "role staff")

	u, err := users.Authenticate("sam", "changed1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role)

	_, err = run(t, users, "", "passwd", "sam", "--password", "changed1", "--role", entity.RoleManager)
	require.NoError(t, err)
	u, err = users.FindByUsername("sam")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)

	_, err = run(t, users, "", "passwd", "ghost", "--password", "changed1")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDelete(t *testing.T) {
	db := testdb.Open(t)
	users := services.NewUserService(db)
	_, err := run(t, users, "", "create", "sam", "--email", "sam@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, err := run(t, users, "n\n", "delete", "sam")
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")

	out, err = run(t, users, "y\n", "delete", "sam")
	require.NoError(t, err)
	assert.Contains(t, out, `deleted user "sam"`)

	// users with order history stay
	u, err := users.Create(services.UserInput{Username: "kim", Email: "kim@example.com", Password: "secret1"})
	require.NoError(t, err)
	table := &entity.Table{TableNumber: 1, Capacity: 2, Status: entity.TableAvailable}
	require.NoError(t, db.Create(table).Error)
	require.NoError(t, db.Create(&entity.Order{TableID: table.ID, UserID: u.ID, Status: entity.OrderCompleted}).Error)

	_, err = run(t, users, "", "delete", "kim", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be deleted")
}
