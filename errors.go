package main

import "errors"

var (
	ErrConfig      = errors.New("invalid configuration")
	ErrNoTemplate  = errors.New("page template not found")
	ErrUnsafePath  = errors.New("output path escapes the output directory")
	ErrInvalidFeed = errors.New("atom feed is not valid")
	ErrPathClash   = errors.New("two pages share one output path")
)
