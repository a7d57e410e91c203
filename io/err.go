package io

import (
	"errors"

	"github.com/ezrec/ycpu/translate"
)

var f = translate.From

var (
	// Device errors
	ErrScriptFunction = errors.New(f("script function missing"))
)
