package model

import "time"

// SubmitPaymentRequest carries a freshly uploaded screenshot key. The upload
// itself happens out-of-band; this core only records the resulting key.
type SubmitPaymentRequest struct {
	ScreenshotKey string `json:"screenshot_key" binding:"required"`
}

// UpdateDetailsRequest carries edited registrant details. Validated once at
// the boundary; the mobile and id-number formats follow the registration form
// rules.
type UpdateDetailsRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	MobileNumber   string `json:"mobile_number" binding:"required,inmobile"`
	WhatsappNumber string `json:"whatsapp_number" binding:"omitempty,inmobile"`
	IDNumber       string `json:"id_number" binding:"required,idnumber"`
	State          string `json:"state" binding:"required"`
	District       string `json:"district" binding:"required"`
	CollegeName    string `json:"college_name" binding:"required"`
	CollegeAddress string `json:"college_address" binding:"required"`
}

// ParticipationResponse represents a participation in API responses.
type ParticipationResponse struct {
	ID                   int64      `json:"id"`
	UserID               int64      `json:"user_id"`
	EventID              int64      `json:"event_id"`
	FullName             string     `json:"full_name"`
	Email                string     `json:"email"`
	MobileNumber         string     `json:"mobile_number"`
	WhatsappNumber       string     `json:"whatsapp_number,omitempty"`
	IDNumber             string     `json:"id_number"`
	State                string     `json:"state"`
	District             string     `json:"district"`
	CollegeName          string     `json:"college_name"`
	CollegeAddress       string     `json:"college_address"`
	Status               Status     `json:"status"`
	PaymentScreenshotKey string     `json:"payment_screenshot_key,omitempty"`
	PaymentSubmittedAt   *time.Time `json:"payment_submitted_at,omitempty"`
	PaymentVerifiedAt    *time.Time `json:"payment_verified_at,omitempty"`
	RegisteredAt         time.Time  `json:"registered_at"`
}

// ToResponse converts a participation entity to its API representation.
func ToResponse(p *Participation) *ParticipationResponse {
	return &ParticipationResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		EventID:              p.EventID,
		FullName:             p.FullName,
		Email:                p.Email,
		MobileNumber:         p.MobileNumber,
		WhatsappNumber:       p.WhatsappNumber,
		IDNumber:             p.IDNumber,
		State:                p.State,
		District:             p.District,
		CollegeName:          p.CollegeName,
		CollegeAddress:       p.CollegeAddress,
		Status:               p.Status,
		PaymentScreenshotKey: p.PaymentScreenshotKey,
		PaymentSubmittedAt:   p.PaymentSubmittedAt,
		PaymentVerifiedAt:    p.PaymentVerifiedAt,
		RegisteredAt:         p.RegisteredAt,
	}
}
