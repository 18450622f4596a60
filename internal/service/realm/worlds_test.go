package realm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helheim/internal/domain"
	"helheim/internal/store"
)

func newWorldsService(t *testing.T) (*Service, *store.MemoryObjectStore) {
	t.Helper()
	objects := store.NewMemoryObjectStore()
	svc := NewService(&mockRealmRepo{}, nil, nil, objects, discardLogger())
	return svc, objects
}

func seedWorld(t *testing.T, objects *store.MemoryObjectStore, realmGUID, worldName string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, objects.Put(ctx, realmGUID+"/worlds/"+worldName+".db", []byte("db")))
	require.NoError(t, objects.Put(ctx, realmGUID+"/worlds/"+worldName+".fwl", []byte("fwl")))
}

func TestListWorlds(t *testing.T) {
	svc, objects := newWorldsService(t)
	ctx := context.Background()

	seedWorld(t, objects, "realm-1", "midgard")
	seedWorld(t, objects, "realm-1", "asgard")
	seedWorld(t, objects, "realm-2", "jotunheim")

	worlds, err := svc.ListWorlds(ctx, "realm-1")
	require.NoError(t, err)
	require.Len(t, worlds, 2)
	// One entry per world, not per save file, in name order.
	assert.Equal(t, "asgard", worlds[0].Name)
	assert.Equal(t, "midgard", worlds[1].Name)
	assert.False(t, worlds[0].ModifiedAt.IsZero())
}

func TestListWorldsEmptyRealm(t *testing.T) {
	svc, _ := newWorldsService(t)

	worlds, err := svc.ListWorlds(context.Background(), "realm-1")
	require.NoError(t, err)
	assert.Empty(t, worlds)
}

func TestCreateWorldBackup(t *testing.T) {
	svc, objects := newWorldsService(t)
	ctx := context.Background()
	seedWorld(t, objects, "realm-1", "midgard")

	err := svc.CreateWorldBackup(ctx, "realm-1", "midgard", domain.CreateRealmWorldBackup{BackupName: "pre-update"})
	require.NoError(t, err)

	backups, err := objects.List(ctx, "realm-1/backups/pre-update/")
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, "realm-1/backups/pre-update/midgard.db", backups[0].Key)
	assert.Equal(t, "realm-1/backups/pre-update/midgard.fwl", backups[1].Key)

	// Source files stay in place.
	originals, err := objects.List(ctx, "realm-1/worlds/")
	require.NoError(t, err)
	assert.Len(t, originals, 2)
}

func TestCreateWorldBackupUnknownWorld(t *testing.T) {
	svc, _ := newWorldsService(t)

	err := svc.CreateWorldBackup(context.Background(), "realm-1", "midgard",
		domain.CreateRealmWorldBackup{BackupName: "pre-update"})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteWorld(t *testing.T) {
	svc, objects := newWorldsService(t)
	ctx := context.Background()
	seedWorld(t, objects, "realm-1", "midgard")
	seedWorld(t, objects, "realm-1", "asgard")

	require.NoError(t, svc.DeleteWorld(ctx, "realm-1", "midgard"))

	remaining, err := objects.List(ctx, "realm-1/worlds/")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "realm-1/worlds/asgard.db", remaining[0].Key)
	assert.Equal(t, "realm-1/worlds/asgard.fwl", remaining[1].Key)
}

func TestDeleteWorldUnknownWorld(t *testing.T) {
	svc, _ := newWorldsService(t)

	err := svc.DeleteWorld(context.Background(), "realm-1", "midgard")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListFiles(t *testing.T) {
	svc, _ := newWorldsService(t)
	ctx := context.Background()

	file := domain.RealmListFile{FileName: "adminlist.txt", Content: "steam-id-1\nsteam-id-2\n"}
	require.NoError(t, svc.SaveListFile(ctx, "realm-1", file))

	got, err := svc.GetListFile(ctx, "realm-1", "adminlist.txt")
	require.NoError(t, err)
	assert.Equal(t, file, *got)
}

func TestListFileUnknownName(t *testing.T) {
	svc, _ := newWorldsService(t)
	ctx := context.Background()

	_, err := svc.GetListFile(ctx, "realm-1", "secrets.txt")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	err = svc.SaveListFile(ctx, "realm-1", domain.RealmListFile{FileName: "../adminlist.txt"})
	require.ErrorAs(t, err, &validation)
}

func TestListFileAbsent(t *testing.T) {
	svc, _ := newWorldsService(t)

	_, err := svc.GetListFile(context.Background(), "realm-1", "bannedlist.txt")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
