package model

// SubmitRequest represents an application to join a team by invitation code.
type SubmitRequest struct {
	FullName       string `json:"full_name" binding:"required,min=2,max=255"`
	Email          string `json:"email" binding:"required,email"`
	MobileNumber   string `json:"mobile_number" binding:"required,inmobile"`
	WhatsappNumber string `json:"whatsapp_number" binding:"omitempty,inmobile"`
	IDNumber       string `json:"id_number" binding:"required,idnumber"`
	State          string `json:"state" binding:"omitempty,max=100"`
	District       string `json:"district" binding:"omitempty,max=100"`
	CollegeName    string `json:"college_name" binding:"omitempty,max=255"`
	CollegeAddress string `json:"college_address" binding:"omitempty,max=512"`
	Message        string `json:"message" binding:"omitempty,max=1000"`
}

// WithdrawRequest identifies the applicant withdrawing their request.
type WithdrawRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// JoinRequestResponse represents a join request in API responses.
type JoinRequestResponse struct {
	ID       int64  `json:"id"`
	TeamID   int64  `json:"team_id"`
	Status   Status `json:"status"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

// ToResponse converts a JoinRequest to its API representation.
func ToResponse(r *JoinRequest) *JoinRequestResponse {
	return &JoinRequestResponse{
		ID:       r.ID,
		TeamID:   r.TeamID,
		Status:   r.Status,
		FullName: r.FullName,
		Email:    r.Email,
		Message:  r.Message,
	}
}
