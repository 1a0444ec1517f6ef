package domain

// Notification is a message delivered by a manager to residents.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt NaiveTime `json:"created_at"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

// NotificationInput is the payload of send_notification. ToUser is ignored
// when SendAll is set.
type NotificationInput struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	ToUser  *string `json:"to_user"`
	SendAll bool    `json:"send_all"`
}
