package backup

import "errors"

var ErrBackupExists = errors.New("backup file already exists")
