package render

import (
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
)

func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

// WritePNG stores the current image in filename.
func (r *Raster) WritePNG(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()
	return r.EncodePNG(file)
}
