package joplin

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
)

// CallbackURL returns the x-callback-url that makes the Joplin desktop app
// open the note.
func CallbackURL(noteID string) string {
	return "joplin://x-callback-url/openNote?id=" + url.QueryEscape(noteID)
}

// URLNavigator "opens" a note by printing its callback URL, for use from a
// terminal where the OS URL handler takes over.
type URLNavigator struct {
	W io.Writer
}

// OpenNote implements commands.Navigator.
func (n URLNavigator) OpenNote(_ context.Context, noteID string) error {
	w := n.W
	if w == nil {
		w = color.Output
	}
	_, err := fmt.Fprintln(w, color.New(color.FgGreen).Sprint(CallbackURL(noteID)))
	return err
}
