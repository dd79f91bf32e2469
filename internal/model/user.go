package model

import "time"

// User is a dashboard account. GoogleID is set for OAuth sign-ins.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	GoogleID  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Subscription *Subscription `json:"subscription,omitempty"`
}

// HasActiveSubscription reports whether the stored snapshot is currently
// billable.
func (u *User) HasActiveSubscription() bool {
	return u.Subscription != nil &&
		(u.Subscription.Status == "active" || u.Subscription.Status == "trialing")
}

// Subscription is the flat snapshot of the user's Stripe subscription.
// Webhook reconciliation overwrites it wholesale; it is never incremented
// or merged, which makes replayed events harmless.
type Subscription struct {
	CustomerID        string     `json:"-"`
	SubscriptionID    string     `json:"subscription_id"`
	Status            string     `json:"status"`
	Plan              string     `json:"plan"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}
