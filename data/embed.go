package data

import (
	"embed"
)

//go:embed app/index.html
var AppShell []byte

//go:embed fixtures
var Fixtures embed.FS
