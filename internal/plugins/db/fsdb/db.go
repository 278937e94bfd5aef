package fsdb

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/i18n"
)

// Db is the file-system store rooted at Dir.
type Db struct {
	Dir string

	Sessions *SessionsEntity
}

func NewDb(dir string) (db *Db) {
	db = &Db{Dir: dir}
	db.Sessions = &SessionsEntity{
		StorageEntity: &StorageEntity{Label: "Sessions", Dir: db.FilePath("sessions"), FileExtension: ".json"},
	}
	return
}

// Configure creates the directory layout.
func (o *Db) Configure() error {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_create_directory"), o.Dir)
	}
	return o.Sessions.Configure()
}

func (o *Db) FilePath(fileName string) string {
	return filepath.Join(o.Dir, fileName)
}
