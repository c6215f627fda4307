package gui

import (
	"embed"

	"github.com/alanbriolat/songdl/gui/glade"
)

//go:embed *.glade
var gladeFiles embed.FS

var GladeRepository = glade.NewRepository(gladeFiles.ReadFile)
