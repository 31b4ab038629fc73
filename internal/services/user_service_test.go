package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrisoutien/internal/authz"
)

func newUserEnv() (UserService, *memUserRepo, *recordingEmails) {
	repo := newMemUserRepo()
	emails := &recordingEmails{}
	return NewUserService(repo, emails, NewAuthService(), nil), repo, emails
}

func TestRegisterCreatesUnverifiedAccount(t *testing.T) {
	svc, repo, emails := newUserEnv()

	user, err := svc.Register("Awa Diop", "  AWA@Example.COM ", "motdepasse1", authz.RoleDonor)
	require.NoError(t, err)

	assert.Equal(t, "awa@example.com", user.Email, "email is normalized")
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "motdepasse1", user.PasswordHash)
	require.NotNil(t, user.EmailVerificationToken)

	// the verification mail carries the stored token
	require.Len(t, emails.verifications, 1)
	assert.Equal(t, *user.EmailVerificationToken, emails.verifications[0])

	stored, err := repo.GetByEmail("awa@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterRefusesAdminSelfAssignment(t *testing.T) {
	svc, _, _ := newUserEnv()

	user, err := svc.Register("Mallory", "mallory@example.com", "motdepasse1", authz.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleDonor, user.Role)

	user, err = svc.Register("Typo", "typo@example.com", "motdepasse1", authz.Role("superuser"))
	require.NoError(t, err)
	assert.Equal(t, authz.RoleDonor, user.Role)

	user, err = svc.Register("Bintou", "bintou@example.com", "motdepasse1", authz.RoleBeneficiary)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleBeneficiary, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserEnv()

	_, err := svc.Register("Awa", "awa@example.com", "motdepasse1", authz.RoleDonor)
	require.NoError(t, err)

	_, err = svc.Register("Imposter", "Awa@example.com", "autrepasse1", authz.RoleDonor)
	assert.Error(t, err)
}

func TestChangeRoleValidation(t *testing.T) {
	svc, repo, _ := newUserEnv()

	user, err := svc.Register("Awa", "awa@example.com", "motdepasse1", authz.RoleDonor)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeRole(user.ID, authz.RoleAdmin))
	stored, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, stored.Role)

	err = svc.ChangeRole(user.ID, authz.Role("root"))
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newUserEnv()

	user, err := svc.Register("Awa", "awa@example.com", "motdepasse1", authz.RoleDonor)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "  Awa Diop  ")
	require.NoError(t, err)
	assert.Equal(t, "Awa Diop", updated.Name)

	// blank name keeps the current one
	updated, err = svc.UpdateProfile(user.ID, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Awa Diop", updated.Name)
}
