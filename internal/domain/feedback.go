package domain

type Feedback struct {
	Base

	UserID     int64            `gorm:"index;not null" json:"user_id"`
	User       User             `gorm:"foreignKey:UserID" json:"-"`
	CategoryID *int64           `gorm:"index" json:"category_id,omitempty"`
	Category   FeedbackCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Message    string           `gorm:"not null" json:"message"`
}

func (Feedback) TableName() string { return "feedbacks" }

type FeedbackCategory struct {
	Base

	Name string `gorm:"not null" json:"name"`
}

func (FeedbackCategory) TableName() string { return "feedback_categories" }
