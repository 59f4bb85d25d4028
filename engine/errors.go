package engine

import (
	"errors"

	"github.com/paulhankin/optosketch/optics"
)

var (
	ErrNotFound    = errors.New("engine: no such object")
	ErrNoFrontEnd  = errors.New("engine: no front end attached")
	ErrEmptyStroke = errors.New("engine: empty stroke")

	ErrNoBaseline       = optics.ErrNoBaseline
	ErrBaselineExists   = optics.ErrBaselineExists
	ErrInvalidFocal     = optics.ErrInvalidFocal
	ErrInvalidDirection = optics.ErrNoDirection
)
