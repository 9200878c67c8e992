package model

// CleanupRequest selects the data categories to wipe. Files controls whether
// the collected blob keys are deleted from storage after the commit.
type CleanupRequest struct {
	Participants   bool `json:"participants"`
	Users          bool `json:"users"`
	Accommodations bool `json:"accommodations"`
	SupportTickets bool `json:"support_tickets"`
	Files          bool `json:"files"`
}

// Selected reports whether any category is enabled.
func (r *CleanupRequest) Selected() bool {
	return r.Participants || r.Users || r.Accommodations || r.SupportTickets || r.Files
}

// CleanupReport is the per-category deletion report.
type CleanupReport struct {
	TeamMembers         int64             `json:"team_members"`
	JoinRequests        int64             `json:"join_requests"`
	Teams               int64             `json:"teams"`
	Participations      int64             `json:"participations"`
	Accommodations      int64             `json:"accommodations"`
	ResponseAttachments int64             `json:"response_attachments"`
	TicketResponses     int64             `json:"ticket_responses"`
	TicketAttachments   int64             `json:"ticket_attachments"`
	Tickets             int64             `json:"tickets"`
	Users               int64             `json:"users"`
	BlobsDeleted        int               `json:"blobs_deleted"`
	BlobFailures        map[string]string `json:"blob_failures,omitempty"`
}

// RemovalResult reports the outcome of a single-member removal.
type RemovalResult struct {
	UserDeleted bool `json:"user_deleted"`
}
