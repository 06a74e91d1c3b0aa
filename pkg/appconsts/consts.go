// Copyright 2025 Author(s) of TypeBus
// SPDX-License-Identifier: Apache-2.0

package appconsts

const (
	// Name is the binary/project name used in help messages and other
	// user-facing output.
	Name = "typebus"
)

// Version is the TypeBus version. It is a variable so release builds can set
// it with ldflags; "dev" marks local development builds.
var Version = "dev"
