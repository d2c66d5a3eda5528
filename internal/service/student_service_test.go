package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "admissions/internal/errors"
	"admissions/internal/model"
)

func TestStudentService_GetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		id := uuid.New()
		mStudents.On("FindByID", mock.Anything, id).Return(&model.Student{ID: id, FullName: "Ada Obi"}, nil)

		service := NewStudentService(mStudents, new(MockResultRepository))
		student, err := service.GetProfile(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, "Ada Obi", student.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		mStudents := new(MockStudentRepository)
		id := uuid.New()
		mStudents.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewStudentService(mStudents, new(MockResultRepository))
		_, err := service.GetProfile(context.Background(), id)

		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestStudentService_UpdateProfile(t *testing.T) {
	mStudents := new(MockStudentRepository)
	id := uuid.New()
	mStudents.On("FindByID", mock.Anything, id).Return(&model.Student{
		ID:    id,
		Email: "ada@example.com",
		Phone: "08011111111",
	}, nil)
	mStudents.On("Save", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)

	service := NewStudentService(mStudents, new(MockResultRepository))
	student, err := service.UpdateProfile(context.Background(), id, UpdateStudentProfileInput{Phone: "08022222222"})

	assert.NoError(t, err)
	assert.Equal(t, "08022222222", student.Phone)
	// Fields left empty in the input stay as they were.
	assert.Equal(t, "ada@example.com", student.Email)
}

func TestStudentService_ListResults(t *testing.T) {
	mResults := new(MockResultRepository)
	id := uuid.New()
	mResults.On("ListByStudent", mock.Anything, id).Return([]model.Result{
		{Score: 75, Grade: "A"},
		{Score: 48, Grade: "D"},
	}, nil)

	service := NewStudentService(new(MockStudentRepository), mResults)
	results, err := service.ListResults(context.Background(), id)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
}
