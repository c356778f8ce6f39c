//go:build !linux

package main

import (
	"errors"

	"gopstree/process"
)

func procfsSource(root string) (process.Source, error) {
	return nil, errors.New("procfs source is only available on linux")
}
