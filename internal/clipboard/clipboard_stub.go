//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

func writePNG([]byte) error { return errUnsupported }

func writeDocument([]byte) error { return errUnsupported }

func readDocument() ([]byte, error) { return nil, errUnsupported }
