package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/learning-tracker/internal/models"
	"github.com/noah-isme/learning-tracker/internal/repository"
	appErrors "github.com/noah-isme/learning-tracker/pkg/errors"
)

func newStudentServiceForTest(t *testing.T) (*StudentService, *repository.StudentRepository) {
	t.Helper()
	repo := repository.NewStudentRepository()
	return NewStudentService(repo, nil, nil, zap.NewNop()), repo
}

func TestStudentServiceCreate(t *testing.T) {
	svc, repo := newStudentServiceForTest(t)

	alice, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.FirstStudentID, alice.ID)

	bob, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Bob", LastName: "Jones", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, models.FirstStudentID+1, bob.ID)
	assert.Equal(t, 2, repo.Count())
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, repo := newStudentServiceForTest(t)

	cases := []CreateStudentRequest{
		{FirstName: "A", LastName: "Smith", Email: "a@x.com"},
		{FirstName: "Alice", LastName: "Sm1th", Email: "a@x.com"},
		{FirstName: "Alice", LastName: "Smith", Email: "not-an-email"},
		{FirstName: "", LastName: "Smith", Email: "a@x.com"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.True(t, appErrors.Is(err, appErrors.ErrValidation), "%+v", req)
	}
	assert.Zero(t, repo.Count())
}

func TestStudentServiceCreateDuplicateEmail(t *testing.T) {
	svc, _ := newStudentServiceForTest(t)
	_, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateStudentRequest{FirstName: "Alicia", LastName: "Smith", Email: "alice@x.com"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrEmailTaken))
	assert.Equal(t, "this email is already taken", appErrors.FromError(err).Message)
}

func TestStudentServiceGetAndDelete(t *testing.T) {
	svc, _ := newStudentServiceForTest(t)
	created, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Alice", LastName: "van Dyke", Email: "alice@x.com"})
	require.NoError(t, err)

	found, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice van Dyke", found.FullName())

	byEmail, err := svc.GetByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.True(t, appErrors.Is(svc.Delete(context.Background(), created.ID), appErrors.ErrNotFound))
}
