package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountStudent(t *testing.T) {
	uni := uuid.New()
	acc, err := NewAccount(RegistrationInput{
		Username:     "amina",
		Email:        " Amina@Example.com ",
		Password:     "s3cret-pass",
		Role:         RoleStudent,
		UniversityID: &uni,
		Course:       "Computer Science",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "amina@example.com", acc.User.Email)
	assert.NotEqual(t, "s3cret-pass", acc.User.PasswordHash)
	assert.True(t, acc.User.CheckPassword("s3cret-pass"))
	assert.False(t, acc.User.CheckPassword("wrong"))
	require.NotNil(t, acc.Student)
	assert.Equal(t, uni, *acc.Student.UniversityID)
	assert.Nil(t, acc.Broker)
}

func TestNewAccountBroker(t *testing.T) {
	acc, err := NewAccount(RegistrationInput{
		Username:    "juma",
		Email:       "juma@example.com",
		Password:    "password123",
		Role:        RoleBroker,
		CompanyName: "Juma Estates",
	}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, acc.Broker)
	assert.Equal(t, "Juma Estates", acc.Broker.CompanyName)
	assert.Nil(t, acc.Student)
}

func TestNewAccountValidation(t *testing.T) {
	_, err := NewAccount(RegistrationInput{
		Username: "x",
		Email:    "not-an-email",
		Password: "short",
		Role:     RoleStudent,
	}, time.Now())
	fields := fieldErrors(t, err)
	for _, f := range []string{"username", "email", "password", "university_id", "course"} {
		assert.Contains(t, fields, f)
	}

	_, err = NewAccount(RegistrationInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "password123",
		Role:     RoleAdmin,
	}, time.Now())
	assert.Contains(t, fieldErrors(t, err), "role")
}
