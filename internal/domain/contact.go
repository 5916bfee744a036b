package domain

import "time"

// ContactInquiry is a message submitted through the public contact form.
type ContactInquiry struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Quote is a motivational quote shown on the dashboard.
type Quote struct {
	ID     int64
	Text   string
	Author string
	Tags   []string
}
