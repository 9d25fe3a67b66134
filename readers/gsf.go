package readers

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-spectro/data"
)

const gsfMagic = "Gwyddion Simple Field 1.0"

// maxGSFSamples bounds XRes*YRes so a corrupt header cannot request an
// arbitrarily large image.
const maxGSFSamples = 1 << 26

// readGSF reads a Gwyddion Simple Field image. Each of the YRes image lines
// becomes a row of XRes features at positions 0..XRes-1.
func readGSF(r io.Reader, cfg *config) (*data.Table, error) {
	br := bufio.NewReader(r)

	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimRight(magic, "\r\n") != gsfMagic {
		return nil, malformed("missing %q header", gsfMagic)
	}

	consumed := len(magic)
	header := make(map[string]string)

	for {
		b, err := br.Peek(1)
		if err != nil {
			return nil, malformed("header not terminated")
		}

		if b[0] == 0 {
			break
		}

		line, err := br.ReadString('\n')
		if err != nil {
			return nil, malformed("header not terminated")
		}

		consumed += len(line)

		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}

		header[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	xres, err := headerInt(header, "XRes")
	if err != nil {
		return nil, err
	}

	yres, err := headerInt(header, "YRes")
	if err != nil {
		return nil, err
	}

	// NUL padding brings the header to a multiple of four bytes.
	pad := 4 - consumed%4
	if _, err := br.Discard(pad); err != nil {
		return nil, malformed("header padding truncated")
	}

	if xres > maxGSFSamples/yres {
		return nil, malformed("image of %d x %d samples exceeds %d", xres, yres, maxGSFSamples)
	}

	axis := make([]float64, xres)
	for i := range axis {
		axis[i] = float64(i)
	}

	line := make([]float32, xres)
	spectra := make([][]float64, 0, min(yres, 1024))

	for y := range yres {
		if err := binary.Read(br, binary.LittleEndian, line); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, malformed("image line %d of %d truncated", y+1, yres)
			}

			return nil, err
		}

		row := make([]float64, xres)
		for x, v := range line {
			row[x] = float64(v)
		}

		spectra = append(spectra, row)
	}

	cfg.logger.Debug("gsf header", "xres", xres, "yres", yres, "title", header["Title"])

	return data.BuildSpecTable(axis, spectra)
}

func headerInt(header map[string]string, key string) (int, error) {
	s, ok := header[key]
	if !ok {
		return 0, malformed("header lacks %s", key)
	}

	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, malformed("%s = %q", key, s)
	}

	return v, nil
}
