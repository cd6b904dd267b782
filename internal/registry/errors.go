package registry

import "errors"

var (
	ErrUnsupportedPlatform = errors.New("registry is only available on windows")
	ErrVerify              = errors.New("registry value does not match the value written")
)
