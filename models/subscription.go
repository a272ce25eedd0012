package models

// Subscription links a subscriber to an author they follow. Self-subscription
// is rejected at the service layer; uniqueness is enforced by the index.
type Subscription struct {
	ID           uint `json:"id" db:"id" gorm:"primaryKey"`
	SubscriberID uint `json:"subscriber_id" db:"subscriber_id" gorm:"not null;uniqueIndex:idx_subscription_pair"`
	AuthorID     uint `json:"author_id" db:"author_id" gorm:"not null;uniqueIndex:idx_subscription_pair"`

	Subscriber User `json:"-" gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Author     User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
