package models

import (
	"time"

	"hostelcare/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	FullName   string      `gorm:"size:100;not null" json:"full_name"`
	Email      string      `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string      `gorm:"size:255;not null" json:"-"`
	Role       domain.Role `gorm:"type:varchar(20);not null;index" json:"role"`
	HostelName *string     `gorm:"size:100" json:"hostel_name"`
	RoomNumber *string     `gorm:"size:20" json:"room_number"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint        `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	HostelName *string     `json:"hostelName"`
	RoomNumber *string     `json:"roomNumber"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       u.Role,
		HostelName: u.HostelName,
		RoomNumber: u.RoomNumber,
	}
}

// ============================================================
// Complaints
// ============================================================

// Complaint represents complaints table.
// StudentName and RoomNumber are copied from the submitter at creation time
// and are not kept in sync with later user edits.
type Complaint struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Category    domain.Category `gorm:"type:varchar(20);not null;index" json:"category"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Location    string          `gorm:"size:200;not null" json:"location"`
	Urgency     domain.Urgency  `gorm:"type:varchar(10);not null;index" json:"urgency"`
	ImagePath   *string         `gorm:"size:255" json:"image_path"`
	StudentName string          `gorm:"size:100" json:"student_name"`
	RoomNumber  *string         `gorm:"size:20" json:"room_number"`
	Status      domain.Status   `gorm:"type:varchar(20);not null;default:'submitted';index" json:"status"`
	AssignedTo  *string         `gorm:"size:100" json:"assigned_to"`
	Deadline    *time.Time      `json:"deadline"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// ============================================================
// Feedback
// ============================================================

// Feedback represents feedback table.
// The composite unique index enforces one row per (complaint, user).
type Feedback struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ComplaintID uint       `gorm:"not null;uniqueIndex:idx_feedback_complaint_user" json:"complaint_id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_feedback_complaint_user;index" json:"user_id"`
	Rating      int        `gorm:"not null" json:"rating"`
	Comment     *string    `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	Complaint   *Complaint `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"-"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// FeedbackWithUser is a feedback row joined with the submitter's name
type FeedbackWithUser struct {
	ID          uint      `json:"id"`
	ComplaintID uint      `json:"complaint_id"`
	UserID      uint      `json:"user_id"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	FullName    string    `json:"full_name"`
}

// FeedbackAggregate is the raw result of the rating summary query
type FeedbackAggregate struct {
	AverageRating    *float64
	TotalFeedback    int64
	PositiveFeedback int64
	NegativeFeedback int64
}

// StatusCount is one row of a GROUP BY status query
type StatusCount struct {
	Status domain.Status
	Count  int64
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Complaint{},
		&Feedback{},
	)
}
