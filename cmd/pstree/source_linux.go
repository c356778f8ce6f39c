//go:build linux

package main

import (
	"gopstree/process"
	"gopstree/process_linux"
)

func procfsSource(root string) (process.Source, error) {
	return process_linux.NewProcfsSource(root), nil
}
