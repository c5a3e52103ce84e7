// Package debug holds inspection helpers that are useful when running
// without a real display, like dumping frames as text art.
package debug

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokedit/pokedit/pokedit/video"
)

// shadeChars maps brightness quartiles to block characters, darkest first.
var shadeChars = []rune{'█', '▓', '▒', '░'}

// SaveFrameText writes a text-art representation of the frame buffer,
// one character per pixel.
func SaveFrameText(fb *video.FrameBuffer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# pokedit frame snapshot\n")
	fmt.Fprintf(file, "# Resolution: %dx%d pixels\n", fb.Width(), fb.Height())
	fmt.Fprintf(file, "# Legend: █=dark ▓ ▒ ░=light\n")
	fmt.Fprintf(file, "#\n")

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			r, g, b, _ := video.Color(fb.GetPixel(x, y)).RGBA()
			luma := (int(r) + int(g) + int(b)) / 3
			if _, err := fmt.Fprintf(file, "%c", shadeChars[luma/64]); err != nil {
				return err
			}
		}
		fmt.Fprintln(file)
	}

	return nil
}

// SaveFrameTextToDir writes a frame snapshot named after baseName into dir.
func SaveFrameTextToDir(fb *video.FrameBuffer, baseName, dir string) error {
	return SaveFrameText(fb, filepath.Join(dir, baseName+".txt"))
}
