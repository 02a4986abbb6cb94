package api

import "time"

type Empty struct{}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type VerifyRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

// UsernameRequest addresses a volunteer by username only (resend
// verification, check reset code).
type UsernameRequest struct {
	Username string `json:"username"`
}

type PasswordResetRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type Project struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Status          int       `json:"status"`
	Category        int       `json:"project_category"`
	Hidden          bool      `json:"hidden"`
	ImageDirectory  string    `json:"image_directory,omitempty"`
	Summary         string    `json:"summary,omitempty"`
	Description     string    `json:"description,omitempty"`
	DataEntryUserID *int64    `json:"data_entry_user_id,omitempty"`
	CreatedAt       time.Time `json:"created_datetime"`
}

// Project listings accepted by ListProjectsRequest.Listing.
const (
	ListingAll      = "all"
	ListingActive   = "active"
	ListingStatus   = "status"
	ListingCategory = "category"
	ListingHidden   = "hidden"
)

type ListProjectsRequest struct {
	Listing string `json:"listing"`
	Value   int    `json:"value,omitempty"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type ProjectRequest struct {
	ID int64 `json:"id"`
}

type ProjectResponse struct {
	Project Project `json:"project"`
}

type UpdateProjectRequest struct {
	Project Project `json:"project"`
}

type ImageUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ImageURLRequest struct {
	Key string `json:"key"`
}

type ImageURLResponse struct {
	URL string `json:"url"`
}

type Notification struct {
	ID             int64     `json:"id"`
	AnnouncementID int64     `json:"announcement_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_datetime"`
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type DismissNotificationRequest struct {
	ID int64 `json:"id"`
}

type ContactUsRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"text"`
}

type EmailStatusResponse struct {
	Online bool `json:"online"`
}

type StoredEmail struct {
	ID         int64     `json:"id"`
	To         string    `json:"to"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	HTML       string    `json:"html,omitempty"`
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_datetime"`
	ModifiedAt time.Time `json:"modified_datetime"`
}

type StoredEmailsResponse struct {
	Emails []StoredEmail `json:"emails"`
}

type StoredEmailRequest struct {
	ID int64 `json:"id"`
}

type UpdateStoredEmailRequest struct {
	Email StoredEmail `json:"email"`
}

type FlushResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// HealthCheckResponse is the report posted to the team Slack channel.
type HealthCheckResponse struct {
	Email    bool `json:"email"`
	Database bool `json:"database"`
}
