package permissions

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&types.User{}, &types.Guild{}, &types.Channel{}, &types.Message{}, &types.Clip{},
	))
	return db
}

// seedClip creates a clip in a guild owned by U2 whose source message was
// authored by U1, plus an admin user U3.
func seedClip(t *testing.T, db *gorm.DB) *types.Clip {
	t.Helper()
	require.NoError(t, db.Create(&types.User{ID: "U1", Username: "author"}).Error)
	require.NoError(t, db.Create(&types.User{ID: "U2", Username: "owner"}).Error)
	require.NoError(t, db.Create(&types.User{ID: "U3", Username: "staff", Roles: "admin"}).Error)
	require.NoError(t, db.Create(&types.Guild{ID: "G1", Name: "guild", OwnerID: "U2"}).Error)
	require.NoError(t, db.Create(&types.Message{
		ID: "M1", GuildID: "G1", ChannelID: "C1", AuthorID: "U1", Timestamp: time.Now(),
	}).Error)
	clip := types.Clip{MessageID: "M1", GuildID: "G1", Title: "a clip"}
	require.NoError(t, db.Create(&clip).Error)
	return &clip
}

func TestResolveClipOwner(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	r := NewResolver(db)

	res, err := r.Resolve(clip.ID, "U1", LevelClipOwner, false)
	require.NoError(t, err)
	require.True(t, res.IsClipOwner)
	require.False(t, res.IsGuildOwner)
	require.Equal(t, clip.ID, res.Clip.ID)
	require.Equal(t, "G1", res.Guild.ID)
}

func TestResolveGuildOwnerDeniedAsClipOwner(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	r := NewResolver(db)

	// U2 owns the guild, not the clip
	_, err := r.Resolve(clip.ID, "U2", LevelClipOwner, false)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	res, err := r.Resolve(clip.ID, "U2", LevelGuildOwner, false)
	require.NoError(t, err)
	require.True(t, res.IsGuildOwner)
}

func TestResolveAdmin(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	r := NewResolver(db)

	res, err := r.Resolve(clip.ID, "U3", LevelSystemAdmin, false)
	require.NoError(t, err)
	require.True(t, res.IsSystemAdmin)

	// admin role only counts when asked for
	_, err = r.Resolve(clip.ID, "U3", LevelClipOwner|LevelGuildOwner, false)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestResolveStrangerDenied(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	r := NewResolver(db)

	_, err := r.Resolve(clip.ID, "U9", LevelClipOwner|LevelGuildOwner|LevelSystemAdmin, false)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestResolveClipNotFound(t *testing.T) {
	db := testDB(t)
	seedClip(t, db)
	r := NewResolver(db)

	_, err := r.Resolve(9999, "U1", LevelClipOwner, false)
	var nf errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "clip", nf.Resource)
}

func TestResolveGuildNotFound(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	require.NoError(t, db.Unscoped().Delete(&types.Guild{}, "id = ?", "G1").Error)
	r := NewResolver(db)

	_, err := r.Resolve(clip.ID, "U1", LevelClipOwner, false)
	var nf errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "guild", nf.Resource)
}

func TestResolveSoftDeletedClip(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)
	require.NoError(t, db.Delete(&types.Clip{}, clip.ID).Error)
	r := NewResolver(db)

	_, err := r.Resolve(clip.ID, "U1", LevelClipOwner, false)
	var nf errs.NotFoundError
	require.ErrorAs(t, err, &nf)

	// moderation paths may opt in to deleted clips
	res, err := r.Resolve(clip.ID, "U1", LevelClipOwner, true)
	require.NoError(t, err)
	require.True(t, res.IsClipOwner)
}

func TestResolveSkipsRoleLookupWhenCheaperLevelGrants(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)

	// make the guild owner an admin too
	require.NoError(t, db.Model(&types.User{ID: "U2"}).Update("roles", "admin").Error)

	userQueries := 0
	require.NoError(t, db.Callback().Query().After("gorm:query").
		Register("test_count_user_queries", func(tx *gorm.DB) {
			if tx.Statement.Table == "users" {
				userQueries++
			}
		}))

	r := NewResolver(db)
	res, err := r.Resolve(clip.ID, "U2", LevelGuildOwner|LevelSystemAdmin, false)
	require.NoError(t, err)
	require.True(t, res.IsGuildOwner)
	require.False(t, res.IsSystemAdmin)
	require.Zero(t, userQueries, "role lookup must be skipped when a cheaper level already granted")
}

func TestResolveRoleLookupStillRunsWhenOnlyAdminRequested(t *testing.T) {
	db := testDB(t)
	clip := seedClip(t, db)

	require.NoError(t, db.Model(&types.User{ID: "U1"}).Update("roles", "admin").Error)

	r := NewResolver(db)
	// U1 owns the clip, but only admin access is requested; the role lookup
	// must happen and grant
	res, err := r.Resolve(clip.ID, "U1", LevelSystemAdmin, false)
	require.NoError(t, err)
	require.True(t, res.IsSystemAdmin)
}
