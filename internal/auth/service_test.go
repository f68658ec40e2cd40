package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Category{},
		&models.Permission{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:   name,
		Email:  name + "@example.org",
		Active: true,
		Role:   role,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func seedGroup(t *testing.T, db *gorm.DB, name string, members ...*models.User) *models.Group {
	t.Helper()

	group := &models.Group{Name: name}
	require.NoError(t, db.Create(group).Error)

	for _, m := range members {
		require.NoError(t, db.Create(&models.GroupMember{UserID: m.ID, GroupID: group.ID}).Error)
	}

	return group
}

func seedCategory(t *testing.T, db *gorm.DB, name, link string, order int) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name, Link: link, Order: order, Role: models.RoleMember}
	require.NoError(t, db.Create(cat).Error)

	return cat
}

func seedGrant(t *testing.T, db *gorm.DB, group *models.Group, cat *models.Category, caps Capability) {
	t.Helper()

	require.NoError(t, db.Create(&models.Permission{
		GroupID:    group.ID,
		CategoryID: cat.ID,
		View:       caps.View,
		Submit:     caps.Submit,
		Revise:     caps.Revise,
		Exclude:    caps.Exclude,
		Approve:    caps.Approve,
	}).Error)
}

func permFor(perms []CategoryPermission, link string) (Capability, bool) {
	for _, p := range perms {
		if p.Category.Link == link {
			return p.Capability, true
		}
	}

	return Capability{}, false
}

func TestEffectivePermissionsUnion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := seedUser(t, db, "editor", models.RoleMember)
	news := seedCategory(t, db, "News", "news", 1)
	meets := seedCategory(t, db, "Meets", "meet", 2)
	records := seedCategory(t, db, "Records", "record", 3)

	// one group grants submit on news, another approve on news plus view
	// on meets; the union must carry all three
	writers := seedGroup(t, db, "writers", user)
	approvers := seedGroup(t, db, "approvers", user)
	seedGrant(t, db, writers, news, Capability{View: true, Submit: true})
	seedGrant(t, db, approvers, news, Capability{View: true, Approve: true})
	seedGrant(t, db, approvers, meets, Capability{View: true})

	perms, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)

	newsCaps, ok := permFor(perms, "news")
	require.True(t, ok)
	assert.True(t, newsCaps.View)
	assert.True(t, newsCaps.Submit)
	assert.True(t, newsCaps.Approve)
	assert.False(t, newsCaps.Revise)
	assert.False(t, newsCaps.Exclude)

	meetCaps, ok := permFor(perms, "meet")
	require.True(t, ok)
	assert.True(t, meetCaps.View)
	assert.False(t, meetCaps.Submit)

	// a category without any grant still appears, all flags false
	recordCaps, ok := permFor(perms, records.Link)
	require.True(t, ok)
	assert.Equal(t, Capability{}, recordCaps)
	assert.Len(t, perms, 3)
}

func TestEffectivePermissionsOrderInvariance(t *testing.T) {
	// seed the same grants in two different insert orders and expect the
	// same effective set
	caps := [2][]Capability{
		{{View: true, Submit: true}, {Approve: true}},
		{{Approve: true}, {View: true, Submit: true}},
	}

	var results [2]Capability

	for i, order := range caps {
		db := setupTestDB(t)
		svc := NewService(db)

		user := seedUser(t, db, "editor", models.RoleMember)
		news := seedCategory(t, db, "News", "news", 1)

		for j, capSet := range order {
			group := seedGroup(t, db, []string{"a", "b"}[j], user)
			seedGrant(t, db, group, news, capSet)
		}

		perms, err := svc.EffectivePermissions(user.ID)
		require.NoError(t, err)

		got, ok := permFor(perms, "news")
		require.True(t, ok)
		results[i] = got
	}

	assert.Equal(t, results[0], results[1])
}

func TestEffectivePermissionsNoMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := seedUser(t, db, "lonely", models.RoleMember)
	seedCategory(t, db, "News", "news", 1)

	perms, err := svc.EffectivePermissions(user.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, Capability{}, perms[0].Capability)
}

func TestEffectivePermissionsAdminReportsStoredGrants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	// the admin override lives in HasCapability; the permission report
	// shows grants exactly as stored
	admin := seedUser(t, db, "boss", models.RoleAdministrator)
	seedCategory(t, db, "News", "news", 1)

	perms, err := svc.EffectivePermissions(admin.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, Capability{}, perms[0].Capability)
}

func TestEffectivePermissionsErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.EffectivePermissions(0)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.EffectivePermissions(999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestHasCapability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	user := seedUser(t, db, "editor", models.RoleMember)
	admin := seedUser(t, db, "boss", models.RoleAdministrator)
	news := seedCategory(t, db, "News", "news", 1)

	group := seedGroup(t, db, "writers", user)
	seedGrant(t, db, group, news, Capability{View: true, Submit: true})

	granted, err := svc.HasCapability(user.ID, LinkNews, ActionSubmit)
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = svc.HasCapability(user.ID, LinkNews, ActionApprove)
	require.NoError(t, err)
	assert.False(t, granted)

	// administrators bypass the grant table
	granted, err = svc.HasCapability(admin.ID, LinkNews, ActionApprove)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestApprovers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	alice := seedUser(t, db, "alice", models.RoleMember)
	bob := seedUser(t, db, "bob", models.RoleMember)
	carol := seedUser(t, db, "carol", models.RoleMember)
	news := seedCategory(t, db, "News", "news", 1)

	// alice holds approve through two different groups and must appear once
	first := seedGroup(t, db, "approvers-a", alice, bob)
	second := seedGroup(t, db, "approvers-b", alice)
	viewers := seedGroup(t, db, "viewers", carol)
	seedGrant(t, db, first, news, Capability{Approve: true})
	seedGrant(t, db, second, news, Capability{Approve: true})
	seedGrant(t, db, viewers, news, Capability{View: true})

	approvers, err := svc.Approvers(LinkNews)
	require.NoError(t, err)
	require.Len(t, approvers, 2)

	seen := map[uint64]int{}
	for _, a := range approvers {
		seen[a.ID]++
	}

	assert.Equal(t, 1, seen[alice.ID])
	assert.Equal(t, 1, seen[bob.ID])
	assert.Zero(t, seen[carol.ID])
}

func TestApproversEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	seedCategory(t, db, "News", "news", 1)

	// nobody holds approve: empty slice, not an error
	approvers, err := svc.Approvers(LinkNews)
	require.NoError(t, err)
	assert.NotNil(t, approvers)
	assert.Empty(t, approvers)
}
