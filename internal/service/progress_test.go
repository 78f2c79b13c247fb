package service

import (
	"context"
	"errors"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func stubProgress(total, done int) *[]string {
	var certs []string
	newUUID = func() string { return "abcdef12-3456-7890-abcd-ef1234567890" }
	getLesson = func(_ context.Context, _ database.Querier, courseID, lessonID int) (*model.Lesson, error) {
		return &model.Lesson{ID: lessonID, CourseID: courseID, IsPublished: true}, nil
	}
	getEnrollment = func(_ context.Context, _ database.Querier, userID, courseID int) (*model.Enrollment, error) {
		return &model.Enrollment{ID: 7, UserID: userID, CourseID: courseID, Status: model.EnrollmentActive}, nil
	}
	markLessonComplete = func(context.Context, database.Querier, int, int, int) error { return nil }
	countPublishedLessons = func(context.Context, database.Querier, int) (int, error) { return total, nil }
	countCompletedLessons = func(context.Context, database.Querier, int, int) (int, error) { return done, nil }
	updateEnrollmentProgress = func(_ context.Context, _ database.Querier, id, progress int, completed bool) (*model.Enrollment, error) {
		status := model.EnrollmentActive
		if completed {
			status = model.EnrollmentCompleted
		}
		return &model.Enrollment{ID: id, Progress: progress, Status: status}, nil
	}
	createCertificate = func(_ context.Context, _ database.Querier, userID, courseID int, number string) (*model.Certificate, error) {
		certs = append(certs, number)
		return &model.Certificate{UserID: userID, CourseID: courseID, Number: number}, nil
	}
	return &certs
}

func TestCompleteLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("partial progress", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		certs := stubProgress(3, 1)
		tx := &database.FakeTx{}
		enr, cert, err := CompleteLesson(ctx, database.TxDB(tx), 1, 2, 3)
		require.NoError(t, err)
		require.Nil(t, cert)
		require.Equal(t, 33, enr.Progress)
		require.Equal(t, model.EnrollmentActive, enr.Status)
		require.Empty(t, *certs)
		require.True(t, tx.Committed)
	})

	t.Run("last lesson issues certificate", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		certs := stubProgress(3, 3)
		enr, cert, err := CompleteLesson(ctx, database.TxDB(&database.FakeTx{}), 1, 2, 3)
		require.NoError(t, err)
		require.Equal(t, 100, enr.Progress)
		require.Equal(t, model.EnrollmentCompleted, enr.Status)
		require.Equal(t, "CERT-ABCDEF123456", cert.Number)
		require.Equal(t, []string{"CERT-ABCDEF123456"}, *certs)
	})

	t.Run("draft lesson", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		stubProgress(3, 1)
		getLesson = func(context.Context, database.Querier, int, int) (*model.Lesson, error) {
			return &model.Lesson{IsPublished: false}, nil
		}
		_, _, err := CompleteLesson(ctx, database.TxDB(&database.FakeTx{}), 1, 2, 3)
		require.True(t, store.IsNotFound(err))
	})

	t.Run("not enrolled", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		stubProgress(3, 1)
		getEnrollment = func(context.Context, database.Querier, int, int) (*model.Enrollment, error) {
			return nil, pgx.ErrNoRows
		}
		tx := &database.FakeTx{}
		_, _, err := CompleteLesson(ctx, database.TxDB(tx), 1, 2, 3)
		require.ErrorIs(t, err, ErrNotEnrolled)
		require.True(t, tx.RolledBack)
	})

	t.Run("revoked enrollment", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		stubProgress(3, 1)
		getEnrollment = func(context.Context, database.Querier, int, int) (*model.Enrollment, error) {
			return &model.Enrollment{Status: model.EnrollmentRevoked}, nil
		}
		_, _, err := CompleteLesson(ctx, database.TxDB(&database.FakeTx{}), 1, 2, 3)
		require.ErrorIs(t, err, ErrNotEnrolled)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		stubProgress(3, 1)
		markLessonComplete = func(context.Context, database.Querier, int, int, int) error { return errors.New("db") }
		_, _, err := CompleteLesson(ctx, database.TxDB(&database.FakeTx{}), 1, 2, 3)
		require.ErrorContains(t, err, "CompleteLesson")
	})
}
