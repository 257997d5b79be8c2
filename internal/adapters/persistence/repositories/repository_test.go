package repositories

import (
	"context"
	"testing"
	"time"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(5, 1))

	user := &models.User{FullName: "Asha Rao", Email: "asha@hostel.edu", Password: "hash", Role: domain.RoleStudent}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, uint(5), user.ID)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password", "role"}).
			AddRow(5, "Asha Rao", "asha@hostel.edu", "hash", "student"))

	got, err := repo.GetByEmail(ctx, "asha@hostel.edu")
	require.NoError(t, err)
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, domain.RoleStudent, got.Role)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?").
		WithArgs("asha@hostel.edu").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(ctx, "asha@hostel.edu")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_ListScopesAndOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `complaints` WHERE user_id = \\? AND status = \\? ORDER BY created_at DESC,id DESC").
		WithArgs(7, "resolved").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(2, 7, "resolved").
			AddRow(1, 7, "resolved"))

	list, err := repo.List(context.Background(), domain.ComplaintFilter{OwnerID: 7, Status: domain.StatusResolved})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_GetByIDOwnerScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `complaints` WHERE id = \\? AND user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 4, 8)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)

	mock.ExpectExec("UPDATE `complaints` SET `status`=\\?,`updated_at`=CURRENT_TIMESTAMP WHERE id = \\?").
		WithArgs("in-progress", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateStatus(context.Background(), 3, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_AssignForcesStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)
	deadline := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE `complaints` SET `assigned_to`=\\?,`deadline`=\\?,`status`=\\?,`updated_at`=CURRENT_TIMESTAMP,`urgency`=\\? WHERE id = \\?").
		WithArgs("Plumbing Team", sqlmock.AnyArg(), "assigned", "high", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Assign(context.Background(), 5, domain.Assignment{
		AssignedTo: "Plumbing Team",
		Urgency:    domain.UrgencyHigh,
		Deadline:   &deadline,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_DeleteOwnerScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)

	mock.ExpectExec("DELETE FROM `complaints` WHERE id = \\? AND user_id = \\?").
		WithArgs(4, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), 4, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_CountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepository(db)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS count FROM `complaints` WHERE user_id = \\? GROUP BY").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("submitted", 2).
			AddRow("assigned", 1))

	counts, err := repo.CountByStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{
		{Status: domain.StatusSubmitted, Count: 2},
		{Status: domain.StatusAssigned, Count: 1},
	}, counts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `feedback` WHERE complaint_id = \\? AND user_id = \\?").
		WithArgs(3, 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.Exists(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_ListByComplaint(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT feedback.id, .*users.full_name FROM `feedback` JOIN users ON users.id = feedback.user_id WHERE feedback.complaint_id = \\? ORDER BY feedback.created_at DESC").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "complaint_id", "user_id", "rating", "comment", "created_at", "full_name"}).
			AddRow(1, 3, 7, 5, "great", now, "Asha Rao"))

	rows, err := repo.ListByComplaint(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Asha Rao", rows[0].FullName)
	require.NotNil(t, rows[0].Comment)
	assert.Equal(t, "great", *rows[0].Comment)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_Aggregate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery("SELECT AVG\\(rating\\) AS average_rating").
		WithArgs(domain.PositiveRating, domain.NegativeRating).
		WillReturnRows(sqlmock.NewRows([]string{"average_rating", "total_feedback", "positive_feedback", "negative_feedback"}).
			AddRow(3.5, 2, 1, 1))

	agg, err := repo.Aggregate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, agg.AverageRating)
	assert.InDelta(t, 3.5, *agg.AverageRating, 0.001)
	assert.Equal(t, int64(2), agg.TotalFeedback)
	assert.Equal(t, int64(1), agg.PositiveFeedback)
	assert.Equal(t, int64(1), agg.NegativeFeedback)

	mock.ExpectQuery("SELECT AVG\\(rating\\) AS average_rating").
		WillReturnRows(sqlmock.NewRows([]string{"average_rating", "total_feedback", "positive_feedback", "negative_feedback"}).
			AddRow(nil, 0, 0, 0))

	agg, err = repo.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, agg.AverageRating)
	assert.Equal(t, int64(0), agg.TotalFeedback)

	assert.NoError(t, mock.ExpectationsWereMet())
}
