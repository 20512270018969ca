//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Boots the demo asset subsystem CLI against the assets/ directory tree.
func (Run) Demo() error {
	fmt.Println("Run animavault demo...")
	if _, err := executeCmd("go", withArgs("run", "./cmd/animavault"), withStream()); err != nil {
		return err
	}
	return nil
}
