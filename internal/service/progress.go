// File: internal/service/progress.go
package service

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	getLesson                = store.GetLesson
	markLessonComplete       = store.MarkLessonComplete
	countPublishedLessons    = store.CountPublishedLessons
	countCompletedLessons    = store.CountCompletedLessons
	updateEnrollmentProgress = store.UpdateEnrollmentProgress
	createCertificate        = store.CreateCertificate
)

// CompleteLesson 標記單元完成並重新計算進度；進度達 100 時核發證書
// 整個流程在同一交易內完成；certificate 在未完成課程時為 nil
func CompleteLesson(ctx context.Context, db database.DB, userID, courseID, lessonID int) (*model.Enrollment, *model.Certificate, error) {
	var (
		enr  *model.Enrollment
		cert *model.Certificate
	)
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		lesson, err := getLesson(ctx, tx, courseID, lessonID)
		if err != nil {
			return err
		}
		if !lesson.IsPublished {
			return pgx.ErrNoRows
		}

		current, err := getEnrollment(ctx, tx, userID, courseID)
		if store.IsNotFound(err) {
			return ErrNotEnrolled
		}
		if err != nil {
			return err
		}
		if !current.GrantsAccess() {
			return ErrNotEnrolled
		}

		if err := markLessonComplete(ctx, tx, userID, courseID, lessonID); err != nil {
			return err
		}
		total, err := countPublishedLessons(ctx, tx, courseID)
		if err != nil {
			return err
		}
		done, err := countCompletedLessons(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}

		progress := model.ProgressPercent(done, total)
		completed := progress == 100
		if enr, err = updateEnrollmentProgress(ctx, tx, current.ID, progress, completed); err != nil {
			return err
		}
		if completed {
			if cert, err = createCertificate(ctx, tx, userID, courseID, NewCertificateNumber()); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrNotEnrolled) {
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, fmt.Errorf("CompleteLesson: %w", err)
	}
	return enr, cert, nil
}
