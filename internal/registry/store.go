package registry

// Key is an open registry key with read and write access.
type Key interface {
	GetString(name string) (string, error)
	SetString(name, value string) error
	Close() error
}

// Store opens keys under HKEY_LOCAL_MACHINE.
type Store interface {
	OpenKey(path string) (Key, error)
}

// Exporter moves a key to and from a .reg file.
type Exporter interface {
	Export(keyPath, file string) error
	Import(file string) error
}
