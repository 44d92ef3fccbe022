package host

import "errors"

var ErrNoSurface = errors.New("host: bind without a surface")
