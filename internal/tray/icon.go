package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

const iconSize = 32

var (
	iconBody = color.NRGBA{R: 0x33, G: 0x3a, B: 0x44, A: 0xff}
	iconKey  = color.NRGBA{R: 0xe8, G: 0xec, B: 0xf0, A: 0xff}
)

// keyboardImage draws a small keyboard: a dark body with two rows of
// keys and a space bar
func keyboardImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	unit := size / 16
	if unit < 1 {
		unit = 1
	}
	body := image.Rect(0, 3*unit, size, size-3*unit)
	draw.Draw(img, body, &image.Uniform{C: iconBody}, image.Point{}, draw.Src)

	key := &image.Uniform{C: iconKey}
	for row := 0; row < 2; row++ {
		y := body.Min.Y + unit + row*3*unit
		for col := 0; col < 5; col++ {
			x := unit + col*3*unit
			draw.Draw(img, image.Rect(x, y, x+2*unit, y+2*unit), key, image.Point{}, draw.Src)
		}
	}
	space := body.Max.Y - 3*unit
	draw.Draw(img, image.Rect(4*unit, space, size-4*unit, space+2*unit), key, image.Point{}, draw.Src)
	return img
}

// pngIcon encodes the keyboard icon as PNG
func pngIcon(size int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, keyboardImage(size)); err != nil {
		return nil
	}
	return buf.Bytes()
}

// wrapICO embeds a PNG in a single image ICO container, which Windows
// accepts since Vista
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}

	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{dim, dim, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(len(pngData)), 22})
	buf.Write(pngData)
	return buf.Bytes()
}
