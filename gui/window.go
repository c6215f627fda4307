package gui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v3"
	"go.uber.org/zap"

	"github.com/alanbriolat/songdl/form"
)

// An editable combo box, built from "<prefix>combo" and its "<prefix>entry" internal child.
type comboEntry struct {
	Combo *gtk.ComboBoxText `glade:"combo"`
	Entry *gtk.Entry        `glade:"entry"`
}

func (c *comboEntry) setChoices(choices []string) {
	for _, choice := range choices {
		c.Combo.AppendText(choice)
	}
}

type formWindow struct {
	Window              *gtk.ApplicationWindow `glade:"main_window"`
	Status              *gtk.Label             `glade:"status_label"`
	Title               *gtk.Entry             `glade:"title_entry"`
	AlbumArtist         *gtk.Entry             `glade:"album_artist_entry"`
	ContributingArtists *gtk.Entry             `glade:"contributing_artists_entry"`
	Album               *gtk.Entry             `glade:"album_entry"`
	Year                comboEntry             `glade:"year_"`
	TrackNumber         comboEntry             `glade:"track_number_"`
	Genre               comboEntry             `glade:"genre_"`
	FilePath            *gtk.Entry             `glade:"file_path_entry"`
	Browse              *gtk.Button            `glade:"browse_button"`
	Download            *gtk.Button            `glade:"download_button"`
	Clear               *gtk.Button            `glade:"clear_button"`

	app     *application
	entries map[form.Field]*gtk.Entry
	binding *form.Binding
	log     *zap.SugaredLogger
}

func (w *formWindow) bind(app *application) {
	w.app = app
	w.log = app.Logger().Sugar().Named("gui")
	w.entries = map[form.Field]*gtk.Entry{
		form.Title:               w.Title,
		form.AlbumArtist:         w.AlbumArtist,
		form.ContributingArtists: w.ContributingArtists,
		form.Album:               w.Album,
		form.Year:                w.Year.Entry,
		form.TrackNumber:         w.TrackNumber.Entry,
		form.Genre:               w.Genre.Entry,
		form.FilePath:            w.FilePath,
	}
	w.Year.setChoices(form.YearChoices(time.Now()))
	w.TrackNumber.setChoices(form.TrackNumberChoices())
	w.Genre.setChoices(form.Genres())

	state := app.state
	widgets := map[form.Field]form.Widget{form.Status: w.Status}
	for f, entry := range w.entries {
		widgets[f] = entry
	}
	// Changes can come from the worker goroutine, so are always rendered on the main loop
	w.binding = form.Bind(state, widgets, func(f func()) { glib.IdleAdd(f) })
	for f, entry := range w.entries {
		f := f
		entry.ConnectChanged(func() { w.binding.Edited(f) })
	}

	w.setBusy(state.Busy())
	state.ObserveBusy(func(busy bool) {
		glib.IdleAdd(func() { w.setBusy(busy) })
	})

	w.Browse.ConnectClicked(w.onBrowse)
	w.Download.ConnectClicked(w.onDownload)
	w.Clear.ConnectClicked(w.onClear)
}

func (w *formWindow) setBusy(busy bool) {
	w.Download.SetSensitive(!busy)
	w.Clear.SetSensitive(!busy)
	w.Browse.SetSensitive(!busy)
}

// readEntries copies every entry into the form state, in case an edit did not emit changed.
func (w *formWindow) readEntries() {
	for f := range w.entries {
		w.binding.Edited(f)
	}
}

func (w *formWindow) onBrowse() {
	w.readEntries()
	w.app.controller.Browse(w.chooseDirectory)
}

func (w *formWindow) chooseDirectory(current string) (string, bool) {
	chooser := gtk.NewFileChooserNative(
		"Select download directory",
		&w.Window.Window,
		gtk.FileChooserActionSelectFolder,
		"_Select",
		"_Cancel",
	)
	defer chooser.Destroy()
	chooser.SetCurrentFolder(current)
	if chooser.Run() != int(gtk.ResponseAccept) {
		return "", false
	}
	return chooser.Filename(), true
}

func (w *formWindow) onDownload() {
	w.readEntries()
	if _, err := w.app.controller.DownloadAndTag(w.app.Context()); err != nil {
		w.log.Warnf("could not start download: %v", err)
	}
}

func (w *formWindow) onClear() {
	w.readEntries()
	if err := w.app.controller.Reset(); err != nil {
		w.log.Warnf("could not clear fields: %v", err)
	}
}
