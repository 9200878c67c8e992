package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	"github.com/festhive/registration/internal/reconciler/repository"
	teamModel "github.com/festhive/registration/internal/team/model"
	userModel "github.com/festhive/registration/internal/user/model"
)

// constrainedSchema mirrors the production migration's foreign keys, sqlite
// dialect. AutoMigrate builds no constraints at all, so these tests create the
// tables by hand to exercise the same referential behavior the deployed
// database enforces.
var constrainedSchema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		mobile_number TEXT,
		role TEXT NOT NULL DEFAULT 'participant',
		image_key TEXT,
		state TEXT,
		district TEXT,
		college_name TEXT,
		college_address TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		token TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL
	)`,
	`CREATE TABLE accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		provider TEXT NOT NULL,
		provider_account_id TEXT NOT NULL
	)`,
	`CREATE TABLE events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		price INTEGER NOT NULL DEFAULT 0,
		team_size INTEGER NOT NULL DEFAULT 1,
		category TEXT,
		event_date DATETIME,
		description_key TEXT,
		rules_key TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE participations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		event_id INTEGER NOT NULL REFERENCES events (id),
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		mobile_number TEXT,
		whatsapp_number TEXT,
		id_number TEXT,
		state TEXT,
		district TEXT,
		college_name TEXT,
		college_address TEXT,
		status TEXT NOT NULL DEFAULT 'REGISTERED',
		payment_screenshot_key TEXT,
		payment_submitted_at DATETIME,
		payment_verified_at DATETIME,
		registered_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, event_id)
	)`,
	`CREATE TABLE teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES events (id),
		name TEXT NOT NULL,
		slug_id TEXT NOT NULL UNIQUE,
		team_code TEXT NOT NULL UNIQUE,
		leader_id INTEGER NOT NULL UNIQUE REFERENCES participations (id) ON DELETE CASCADE,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE team_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
		participant_id INTEGER NOT NULL UNIQUE REFERENCES participations (id) ON DELETE CASCADE,
		joined_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE team_join_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'PENDING',
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		mobile_number TEXT NOT NULL,
		whatsapp_number TEXT,
		id_number TEXT NOT NULL,
		state TEXT,
		district TEXT,
		college_name TEXT,
		college_address TEXT,
		message TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		resolved_at DATETIME
	)`,
	`CREATE TABLE system_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE accommodations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		check_in DATETIME NOT NULL,
		check_out DATETIME NOT NULL,
		guests INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE support_tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		subject TEXT NOT NULL,
		body TEXT,
		status TEXT NOT NULL DEFAULT 'OPEN',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE support_ticket_responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL REFERENCES support_tickets (id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		body TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE ticket_attachments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_id INTEGER NOT NULL REFERENCES support_tickets (id) ON DELETE CASCADE,
		blob_key TEXT NOT NULL
	)`,
	`CREATE TABLE response_attachments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		response_id INTEGER NOT NULL REFERENCES support_ticket_responses (id) ON DELETE CASCADE,
		blob_key TEXT NOT NULL
	)`,
}

func setupConstrainedService(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range constrainedSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	blobs := &fakeBlobStore{failKeys: map[string]error{}}
	svc := New(repository.New(db), blobs, db, zap.NewNop().Sugar())

	return &fixture{db: db, blobs: blobs, svc: svc}
}

func (f *fixture) seedSatelliteRows(t *testing.T, userID int64) {
	require.NoError(t, f.db.Create(&reconcilerModel.Accommodation{
		UserID: userID, CheckIn: time.Now(), CheckOut: time.Now().Add(48 * time.Hour),
	}).Error)
	ticket := &reconcilerModel.SupportTicket{UserID: userID, Subject: "Help"}
	require.NoError(t, f.db.Create(ticket).Error)
	require.NoError(t, f.db.Create(&reconcilerModel.TicketAttachment{
		TicketID: ticket.ID, BlobKey: "tickets/t1.png",
	}).Error)
	response := &reconcilerModel.SupportTicketResponse{TicketID: ticket.ID, UserID: userID}
	require.NoError(t, f.db.Create(response).Error)
	require.NoError(t, f.db.Create(&reconcilerModel.ResponseAttachment{
		ResponseID: response.ID, BlobKey: "responses/r1.png",
	}).Error)
}

func TestService_RemoveMemberConstrained(t *testing.T) {
	ctx := context.Background()

	t.Run("member with accommodation and support rows is fully removed", func(t *testing.T) {
		f := setupConstrainedService(t)
		event := f.seedEvent(t, "robo-race")
		leaderUser := f.seedUser(t, "lead@example.com", userModel.RoleParticipant)
		memberUser := f.seedUser(t, "member@example.com", userModel.RoleParticipant)
		leader := f.seedParticipation(t, leaderUser.ID, event.ID, "")
		member := f.seedParticipation(t, memberUser.ID, event.ID, "")
		team := f.seedTeamWithMember(t, event.ID, leader.ID, member.ID)
		f.seedSatelliteRows(t, memberUser.ID)

		result, err := f.svc.RemoveMember(ctx, team.ID, member.ID)

		require.NoError(t, err)
		assert.True(t, result.UserDeleted)

		var count int64
		f.db.Model(&teamModel.TeamMember{}).Count(&count)
		assert.Zero(t, count)
		f.db.Model(&userModel.User{}).Where("id = ?", memberUser.ID).Count(&count)
		assert.Zero(t, count)
		f.db.Model(&reconcilerModel.Accommodation{}).Count(&count)
		assert.Zero(t, count, "accommodation follows its user")
		f.db.Model(&reconcilerModel.SupportTicket{}).Count(&count)
		assert.Zero(t, count)
		f.db.Model(&reconcilerModel.TicketAttachment{}).Count(&count)
		assert.Zero(t, count)
		f.db.Model(&reconcilerModel.ResponseAttachment{}).Count(&count)
		assert.Zero(t, count)

		f.db.Model(&teamModel.Team{}).Count(&count)
		assert.Equal(t, int64(1), count, "team survives the member removal")
		f.db.Model(&userModel.User{}).Where("id = ?", leaderUser.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestService_BulkCleanupConstrained(t *testing.T) {
	ctx := context.Background()

	t.Run("users-only cleanup clears everything referencing them", func(t *testing.T) {
		f := setupConstrainedService(t)
		event := f.seedEvent(t, "robo-race")
		adminUser := f.seedUser(t, "admin@example.com", userModel.RoleAdmin)
		leaderUser := f.seedUser(t, "lead@example.com", userModel.RoleParticipant)
		memberUser := f.seedUser(t, "member@example.com", userModel.RoleParticipant)
		leader := f.seedParticipation(t, leaderUser.ID, event.ID, "payments/l.png")
		member := f.seedParticipation(t, memberUser.ID, event.ID, "")
		f.seedTeamWithMember(t, event.ID, leader.ID, member.ID)
		f.seedSatelliteRows(t, memberUser.ID)
		require.NoError(t, f.db.Create(&userModel.Session{
			UserID: memberUser.ID, Token: "tok", ExpiresAt: time.Now().Add(time.Hour),
		}).Error)

		report, err := f.svc.BulkCleanup(ctx, adminCaller, &reconcilerModel.CleanupRequest{
			Users: true,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), report.Users)

		var count int64
		f.db.Model(&userModel.User{}).Count(&count)
		assert.Equal(t, int64(1), count, "only the admin remains")
		f.db.Model(&userModel.User{}).Where("id = ?", adminUser.ID).Count(&count)
		assert.Equal(t, int64(1), count)
		for _, m := range []interface{}{
			&userModel.Session{},
			&teamModel.Team{},
			&teamModel.TeamMember{},
			&reconcilerModel.Accommodation{},
			&reconcilerModel.SupportTicket{},
			&reconcilerModel.SupportTicketResponse{},
			&reconcilerModel.TicketAttachment{},
			&reconcilerModel.ResponseAttachment{},
		} {
			f.db.Model(m).Count(&count)
			assert.Zero(t, count)
		}
		f.db.Table("participations").Count(&count)
		assert.Zero(t, count, "participations follow their users")
	})

	t.Run("accommodations-only cleanup leaves users in place", func(t *testing.T) {
		f := setupConstrainedService(t)
		user := f.seedUser(t, "lead@example.com", userModel.RoleParticipant)
		require.NoError(t, f.db.Create(&reconcilerModel.Accommodation{
			UserID: user.ID, CheckIn: time.Now(), CheckOut: time.Now().Add(24 * time.Hour),
		}).Error)

		report, err := f.svc.BulkCleanup(ctx, adminCaller, &reconcilerModel.CleanupRequest{
			Accommodations: true,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), report.Accommodations)

		var count int64
		f.db.Model(&userModel.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}
