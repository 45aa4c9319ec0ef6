package domain

type Admin struct {
	ID           int32  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	DeviceToken  string `json:"-"` // FCM registration token for push notifications
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}
