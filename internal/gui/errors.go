package gui

import "errors"

var ErrWindow = errors.New("gui: window did not open")
