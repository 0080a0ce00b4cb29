package domain

import "context"

type Status struct {
	StatusID   string `gorm:"primaryKey;size:30" json:"status_id"`
	UserID     string `gorm:"size:30;not null;index" json:"user_id"`
	StatusText string `gorm:"not null" json:"status_text"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Status) TableName() string { return "status" }

// StatusRepository is the status table of the record store.
// FindByID returns (nil, nil) when the id is absent.
type StatusRepository interface {
	Create(ctx context.Context, s *Status) error
	FindByID(ctx context.Context, id string) (*Status, error)
	UpdateText(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
