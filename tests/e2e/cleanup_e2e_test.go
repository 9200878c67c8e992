//go:build e2e
// +build e2e

package e2e

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	participationModel "github.com/festhive/registration/internal/participation/model"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	teamModel "github.com/festhive/registration/internal/team/model"
	userModel "github.com/festhive/registration/internal/user/model"
)

// TestUserCascadeAgainstRealSchema exercises the reconciler against the
// migrated PostgreSQL schema, where foreign keys actually constrain the
// deletes: removing a member whose user booked accommodation and opened a
// support ticket, then a users-only cleanup while participations still
// reference the remaining users.
func (s *E2ETestSuite) TestUserCascadeAgainstRealSchema() {
	t := s.T()

	adminID := s.seedUser("Ops", "ops@festhive.example", userModel.RoleAdmin)
	leaderID := s.seedUser("Lead2", "lead2@festhive.example", userModel.RoleParticipant)
	memberID := s.seedUser("Member2", "member2@festhive.example", userModel.RoleParticipant)
	eventID := s.seedEvent("Hackathon", "hackathon", 3)

	leader := &participationModel.Participation{
		UserID: leaderID, EventID: eventID, Status: participationModel.StatusConfirmed,
	}
	require.NoError(t, s.db.Create(leader).Error)
	member := &participationModel.Participation{
		UserID: memberID, EventID: eventID, Status: participationModel.StatusConfirmed,
	}
	require.NoError(t, s.db.Create(member).Error)

	team := &teamModel.Team{
		EventID: eventID, Name: "Night Owls", SlugID: "night-owls-hackathon",
		TeamCode: "NO12OW34LS", LeaderID: leader.ID,
	}
	require.NoError(t, s.db.Create(team).Error)
	require.NoError(t, s.db.Create(&teamModel.TeamMember{
		TeamID: team.ID, ParticipantID: member.ID, JoinedAt: time.Now(),
	}).Error)

	require.NoError(t, s.db.Create(&reconcilerModel.Accommodation{
		UserID: memberID, CheckIn: time.Now(), CheckOut: time.Now().Add(48 * time.Hour),
	}).Error)
	ticket := &reconcilerModel.SupportTicket{UserID: memberID, Subject: "Wrong event"}
	require.NoError(t, s.db.Create(ticket).Error)
	require.NoError(t, s.db.Create(&reconcilerModel.TicketAttachment{
		TicketID: ticket.ID, BlobKey: "tickets/wrong-event.png",
	}).Error)

	// Member removal: the user's satellite rows must not block the delete.
	w := s.do("DELETE", fmt.Sprintf("/teams/%d/members/%d", team.ID, member.ID),
		nil, leaderID, "participant")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	s.db.Model(&userModel.User{}).Where("id = ?", memberID).Count(&count)
	assert.Zero(t, count, "member user is gone")
	s.db.Model(&reconcilerModel.Accommodation{}).Where("user_id = ?", memberID).Count(&count)
	assert.Zero(t, count)
	s.db.Model(&reconcilerModel.SupportTicket{}).Where("user_id = ?", memberID).Count(&count)
	assert.Zero(t, count)
	s.db.Model(&teamModel.Team{}).Where("id = ?", team.ID).Count(&count)
	assert.Equal(t, int64(1), count, "team survives")

	// Users-only cleanup: participations and team structures of the deleted
	// users must follow them even though the participants flag is off.
	w = s.do("POST", "/admin/cleanup", map[string]bool{"users": true}, adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s.db.Model(&userModel.User{}).Where("role <> ?", userModel.RoleAdmin).Count(&count)
	assert.Zero(t, count, "no non-admin users remain")
	s.db.Model(&participationModel.Participation{}).Count(&count)
	assert.Zero(t, count)
	s.db.Model(&teamModel.Team{}).Count(&count)
	assert.Zero(t, count)
	s.db.Model(&teamModel.TeamMember{}).Count(&count)
	assert.Zero(t, count)
}
