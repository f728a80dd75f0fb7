// Package loop runs one terminal game session: it reads keys, advances a
// game.World one tick per frame and draws it with half-block characters.
package loop

import (
	"bufio"
	"io"
)

// Run plays one session on r and w until the player quits, the session
// idles out or a shutdown notice has been shown.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run()
}
