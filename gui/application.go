// Package gui renders the download form as a GTK window.
package gui

import (
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v3"

	"github.com/alanbriolat/songdl/form"
	"github.com/alanbriolat/songdl/internal/env"
)

const DefaultAppID = "co.hexi.songdl"

type Application interface {
	env.Env

	Run(args ...string) int
}

type application struct {
	env.Env
	gtkApplication *gtk.Application

	state      *form.State
	controller *form.Controller
	window     *formWindow
}

func NewApplication(e env.Env, appID string) Application {
	a := &application{
		Env:   e,
		state: form.New(e.Config().DefaultDirectory),
	}
	a.controller = form.NewController(a.state, e.Runner())

	a.gtkApplication = gtk.NewApplication(appID, gio.ApplicationFlagsNone)
	a.gtkApplication.ConnectStartup(a.onStartup)
	a.gtkApplication.ConnectActivate(a.onActivate)
	a.gtkApplication.ConnectShutdown(a.onShutdown)

	return a
}

func (a *application) Run(args ...string) int {
	go func() {
		<-a.Context().Done()
		glib.IdleAdd(func() { a.gtkApplication.Quit() })
	}()
	return a.gtkApplication.Run(args)
}

func (a *application) onStartup() {
	a.Logger().Info("application startup")
}

func (a *application) onActivate() {
	a.Logger().Info("application activate")
	if a.window != nil {
		a.window.Window.Present()
		return
	}

	a.window = &formWindow{}
	GladeRepository.MustBind(a.window, "songdl.glade")
	a.window.Window.SetApplication(a.gtkApplication)
	a.window.bind(a)
	a.window.Window.ShowAll()
}

func (a *application) onShutdown() {
	a.Logger().Info("application shutdown")
	a.Runner().Cancel()
}
