package realm

import (
	"context"
	"path"
	"sort"
	"strings"

	"helheim/internal/domain"
)

// World saves live in the object store under <realm>/worlds/<world>.<ext>;
// a world usually consists of a .db and a .fwl file. Backups are copied to
// <realm>/backups/<backup>/ and list files live at <realm>/<file_name>.

func worldsPrefix(realmGUID string) string {
	return realmGUID + "/worlds/"
}

// ListWorlds returns the realm's world saves, newest modification per world.
func (s *Service) ListWorlds(ctx context.Context, realmGUID string) ([]domain.RealmWorld, error) {
	objects, err := s.worlds.List(ctx, worldsPrefix(realmGUID))
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.RealmWorld)
	for _, obj := range objects {
		base := path.Base(obj.Key)
		name := strings.TrimSuffix(base, path.Ext(base))
		if name == "" {
			continue
		}
		world, ok := byName[name]
		if !ok || obj.ModifiedAt.After(world.ModifiedAt) {
			byName[name] = domain.RealmWorld{Name: name, ModifiedAt: obj.ModifiedAt}
		}
	}

	worlds := make([]domain.RealmWorld, 0, len(byName))
	for _, world := range byName {
		worlds = append(worlds, world)
	}
	sort.Slice(worlds, func(i, j int) bool { return worlds[i].Name < worlds[j].Name })
	return worlds, nil
}

// worldObjects lists the save files that make up one world.
func (s *Service) worldObjects(ctx context.Context, realmGUID, worldName string) ([]domain.ObjectInfo, error) {
	objects, err := s.worlds.List(ctx, worldsPrefix(realmGUID)+worldName+".")
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, domain.ErrNotFound("realm world %s not found", worldName)
	}
	return objects, nil
}

// CreateWorldBackup copies the world's save files into the realm's backup
// prefix under backupName.
func (s *Service) CreateWorldBackup(ctx context.Context, realmGUID, worldName string, req domain.CreateRealmWorldBackup) error {
	if err := req.Validate(); err != nil {
		return err
	}
	objects, err := s.worldObjects(ctx, realmGUID, worldName)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		dst := realmGUID + "/backups/" + req.BackupName + "/" + path.Base(obj.Key)
		if err := s.worlds.Copy(ctx, obj.Key, dst); err != nil {
			return err
		}
	}
	s.logger.Info("world backup created",
		"realm", realmGUID, "world", worldName, "backup", req.BackupName)
	return nil
}

// DeleteWorld removes the world's save files.
func (s *Service) DeleteWorld(ctx context.Context, realmGUID, worldName string) error {
	objects, err := s.worldObjects(ctx, realmGUID, worldName)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		if err := s.worlds.Delete(ctx, obj.Key); err != nil {
			return err
		}
	}
	s.logger.Info("world deleted", "realm", realmGUID, "world", worldName)
	return nil
}

// GetListFile fetches one of the server's player list files.
func (s *Service) GetListFile(ctx context.Context, realmGUID, fileName string) (*domain.RealmListFile, error) {
	if err := domain.ValidateListFileName(fileName); err != nil {
		return nil, err
	}
	content, ok, err := s.worlds.Get(ctx, realmGUID+"/"+fileName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("realm list file %s not found", fileName)
	}
	return &domain.RealmListFile{FileName: fileName, Content: string(content)}, nil
}

// SaveListFile stores one of the server's player list files.
func (s *Service) SaveListFile(ctx context.Context, realmGUID string, file domain.RealmListFile) error {
	if err := domain.ValidateListFileName(file.FileName); err != nil {
		return err
	}
	return s.worlds.Put(ctx, realmGUID+"/"+file.FileName, []byte(file.Content))
}
