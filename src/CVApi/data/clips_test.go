package data

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clipvault/clipvault/src/CVApi/pagination"
	"github.com/clipvault/clipvault/src/CVApi/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.Message{}, &types.Clip{}))
	return db
}

func seedClips(t *testing.T, db *gorm.DB, guildID string, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		msgID := fmt.Sprintf("%s-m%03d", guildID, i)
		require.NoError(t, db.Create(&types.Message{
			ID: msgID, GuildID: guildID, ChannelID: "C1", AuthorID: "U1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}).Error)
		require.NoError(t, db.Create(&types.Clip{
			MessageID: msgID,
			GuildID:   guildID,
			Title:     fmt.Sprintf("clip %03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}
}

func TestListClipsHasMore(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 51)

	w := pagination.Window{Offset: 0, Limit: 50}.Clamp()
	clips, hasMore, err := ListClips(db, "G1", w, SortByCreated, false)
	require.NoError(t, err)
	require.Len(t, clips, 50)
	require.True(t, hasMore)
}

func TestListClipsExactPage(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 50)

	w := pagination.Window{Offset: 0, Limit: 50}.Clamp()
	clips, hasMore, err := ListClips(db, "G1", w, SortByCreated, false)
	require.NoError(t, err)
	require.Len(t, clips, 50)
	require.False(t, hasMore)
}

func TestListClipsOffsetBeyondEnd(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 5)

	w := pagination.Window{Offset: 100, Limit: 50}.Clamp()
	clips, hasMore, err := ListClips(db, "G1", w, SortByCreated, false)
	require.NoError(t, err)
	require.Empty(t, clips)
	require.False(t, hasMore)
}

func TestListClipsClampsOversizedLimit(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 120)

	w := pagination.Window{Offset: 0, Limit: 500}.Clamp()
	clips, hasMore, err := ListClips(db, "G1", w, SortByCreated, false)
	require.NoError(t, err)
	require.Len(t, clips, pagination.MaxLimit)
	require.True(t, hasMore)
}

func TestListClipsExcludesSoftDeleted(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 3)
	require.NoError(t, db.Delete(&types.Clip{}, "guild_id = ? AND title = ?", "G1", "clip 001").Error)

	w := pagination.Window{Offset: 0, Limit: 10}.Clamp()
	clips, hasMore, err := ListClips(db, "G1", w, SortByCreated, false)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	require.False(t, hasMore)
}

func TestListClipsOrderAndPreload(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 3)
	seedClips(t, db, "G2", 2)

	w := pagination.Window{Offset: 0, Limit: 10}.Clamp()
	clips, _, err := ListClips(db, "G1", w, SortByCreated, true)
	require.NoError(t, err)
	require.Len(t, clips, 3)
	require.Equal(t, "clip 002", clips[0].Title)
	require.Equal(t, "U1", clips[0].Message.AuthorID)

	// offsets walk the same ordering
	next, _, err := ListClips(db, "G1", pagination.Window{Offset: 1, Limit: 10}.Clamp(), SortByCreated, true)
	require.NoError(t, err)
	require.Equal(t, "clip 001", next[0].Title)
}

func TestGetClipIncludeDeleted(t *testing.T) {
	db := testDB(t)
	seedClips(t, db, "G1", 1)

	var clip types.Clip
	require.NoError(t, db.First(&clip).Error)
	require.NoError(t, db.Delete(&clip).Error)

	_, err := GetClip(db, clip.ID, false)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := GetClip(db, clip.ID, true)
	require.NoError(t, err)
	require.Equal(t, clip.ID, got.ID)
}
