//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventModel "github.com/festhive/registration/internal/event/model"
	joinrequestModel "github.com/festhive/registration/internal/joinrequest/model"
	participationModel "github.com/festhive/registration/internal/participation/model"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	teamModel "github.com/festhive/registration/internal/team/model"
	userModel "github.com/festhive/registration/internal/user/model"
)

func (s *E2ETestSuite) seedUser(name, email, role string) int64 {
	user := &userModel.User{Name: name, Email: email, MobileNumber: "9876543210", Role: role}
	require.NoError(s.T(), s.db.Create(user).Error)
	return user.ID
}

func (s *E2ETestSuite) seedEvent(title, slug string, teamSize int) int64 {
	event := &eventModel.Event{Title: title, Slug: slug, TeamSize: teamSize}
	require.NoError(s.T(), s.db.Create(event).Error)
	return event.ID
}

// TestFullRegistrationScenario walks one festival cycle end to end: a
// participant registers, pays and is verified, forms a team, an anonymous
// applicant joins through the team code, and finally the organizer wipes
// everything.
func (s *E2ETestSuite) TestFullRegistrationScenario() {
	t := s.T()

	leaderID := s.seedUser("Lead", "lead@festhive.example", userModel.RoleParticipant)
	adminID := s.seedUser("Org", "org@festhive.example", userModel.RoleAdmin)
	eventID := s.seedEvent("Robo Race", "robo-race", 3)

	// Registration
	w := s.do("POST", "/events/robo-race/register", nil, leaderID, "participant")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Participation participationModel.ParticipationResponse `json:"participation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, participationModel.StatusRegistered, created.Participation.Status)
	pid := created.Participation.ID

	// Payment and verification
	w = s.do("PATCH", fmt.Sprintf("/participations/%d/payment", pid),
		map[string]string{"screenshot_key": "payments/lead.png"}, leaderID, "participant")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do("POST", fmt.Sprintf("/participations/%d/verify", pid), nil, adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var verified struct {
		Participation participationModel.ParticipationResponse `json:"participation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	require.Equal(t, participationModel.StatusConfirmed, verified.Participation.Status)

	// Team creation
	w = s.do("POST", "/teams", map[string]interface{}{
		"event_id": eventID, "name": "Rovers",
	}, leaderID, "participant")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var createdTeam struct {
		Team teamModel.TeamResponse `json:"team"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createdTeam))
	teamID := createdTeam.Team.ID
	teamCode := createdTeam.Team.TeamCode
	require.NotEmpty(t, teamCode)

	// Anonymous join request by team code
	w = s.do("POST", "/join/"+teamCode, map[string]string{
		"full_name":     "Applicant",
		"email":         "applicant@festhive.example",
		"mobile_number": "9876501234",
		"id_number":     "123456789012",
	}, 0, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var submitted struct {
		JoinRequest joinrequestModel.JoinRequestResponse `json:"join_request"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))

	// The leader sees the pending request and accepts it
	w = s.do("GET", fmt.Sprintf("/teams/%d/join-requests", teamID), nil, leaderID, "participant")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "applicant@festhive.example")

	w = s.do("POST", fmt.Sprintf("/join-requests/%d/accept", submitted.JoinRequest.ID),
		nil, leaderID, "participant")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var applicant userModel.User
	require.NoError(t, s.db.First(&applicant, "email = ?", "applicant@festhive.example").Error)

	var memberCount int64
	s.db.Model(&teamModel.TeamMember{}).Where("team_id = ?", teamID).Count(&memberCount)
	assert.Equal(t, int64(1), memberCount)

	// A second accept on the same request is rejected
	w = s.do("POST", fmt.Sprintf("/join-requests/%d/accept", submitted.JoinRequest.ID),
		nil, leaderID, "participant")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Organizer cleanup wipes everything but admins
	w = s.do("POST", "/admin/cleanup", map[string]bool{
		"participants": true, "users": true, "files": true,
	}, adminID, "admin")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Report reconcilerModel.CleanupReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Report.Teams)
	assert.Equal(t, int64(2), result.Report.Participations)
	assert.Equal(t, int64(2), result.Report.Users)
	assert.Contains(t, s.blobs.deleted, "payments/lead.png")

	var userCount int64
	s.db.Model(&userModel.User{}).Count(&userCount)
	assert.Equal(t, int64(1), userCount, "only the admin remains")
}
