package fsdb

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/i18n"
)

// ErrInvalidName is returned for names that would escape the entity directory.
var ErrInvalidName = errors.New("invalid storage name")

// StorageEntity is a directory of files addressed by name.
type StorageEntity struct {
	Label         string
	Dir           string
	FileExtension string
}

// Configure creates the entity directory.
func (o *StorageEntity) Configure() error {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_create_directory"), o.Dir)
	}
	return nil
}

// GetNames lists stored names, sorted, without the file extension.
func (o *StorageEntity) GetNames() (ret []string, err error) {
	var entries []os.DirEntry
	if entries, err = os.ReadDir(o.Dir); err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, i18n.T("fsdb_error_read_directory"), o.Dir)
	}

	ret = make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, o.FileExtension) || strings.HasPrefix(name, ".") {
			continue
		}
		ret = append(ret, strings.TrimSuffix(name, o.FileExtension))
	}
	sort.Strings(ret)
	return ret, nil
}

// BuildFilePath maps a name to its file, rejecting names with separators.
func (o *StorageEntity) BuildFilePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(o.Dir, name+o.FileExtension), nil
}

// Exists reports whether name is stored.
func (o *StorageEntity) Exists(name string) bool {
	path, err := o.BuildFilePath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the content stored under name.
func (o *StorageEntity) Load(name string) ([]byte, error) {
	path, err := o.BuildFilePath(name)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, i18n.T("fsdb_error_read_file"), path)
	}
	return content, nil
}

// Save writes content under name. The write goes through a temp file and a
// rename so readers never see a partial file.
func (o *StorageEntity) Save(name string, content []byte) error {
	path, err := o.BuildFilePath(name)
	if err != nil {
		return err
	}
	if err = o.Configure(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(o.Dir, "."+name+"-*.tmp")
	if err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_write_file"), path)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Wrapf(err, i18n.T("fsdb_error_write_file"), path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_write_file"), path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, i18n.T("fsdb_error_write_file"), path)
	}
	return nil
}

// Delete removes name. Deleting a missing name is not an error.
func (o *StorageEntity) Delete(name string) error {
	path, err := o.BuildFilePath(name)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, i18n.T("fsdb_error_delete_file"), path)
	}
	return nil
}
