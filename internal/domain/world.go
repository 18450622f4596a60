package domain

import (
	"slices"
	"time"
)

// RealmWorld is a world save stored for a realm.
type RealmWorld struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"m_at"`
}

// RealmListFile is one of the server's player list files.
type RealmListFile struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

var validListFileNames = []string{"adminlist.txt", "permittedlist.txt", "bannedlist.txt"}

// ValidateListFileName rejects anything that is not one of the three player
// list files the game server reads.
func ValidateListFileName(name string) error {
	if !slices.Contains(validListFileNames, name) {
		return ErrValidation(
			"invalid realm list file name %q, valid options are adminlist.txt, permittedlist.txt, bannedlist.txt", name)
	}
	return nil
}

// CreateRealmWorldBackup holds parameters for backing up a world save.
type CreateRealmWorldBackup struct {
	BackupName string `json:"backup_name"`
}

// Validate checks that the request is well-formed.
func (r *CreateRealmWorldBackup) Validate() error {
	if r.BackupName == "" {
		return ErrValidation("backup name is required")
	}
	return nil
}
