package process

import "errors"

var ErrTimeout = errors.New("process is still running after the retry budget")
