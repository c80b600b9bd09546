package matrix

const (
	// PanelSize is the edge length of one panel in pixels.
	PanelSize = 8
	// PanelCells is the number of pixels driven by one chip.
	PanelCells = PanelSize * PanelSize
)

// BufferLen returns the pixel buffer length for a chain of panels.
func BufferLen(panels int) int {
	if panels <= 0 {
		return 0
	}
	return PanelCells * panels
}

// Transform converts a pixel buffer into the per-row register bytes of every
// panel. The result holds PanelSize rows with one byte per panel; bit 7-c of
// rows[row][panel] is set when buf[panel*64 + c*8 + row] is non-zero.
//
// Within a panel the buffer is column-major: eight consecutive cells form one
// chip column. Cells missing from a short buffer read as off. Transform
// returns nil for panels <= 0.
func Transform(buf []byte, panels int) [][]byte {
	if panels <= 0 {
		return nil
	}

	rows := make([][]byte, PanelSize)
	for row := range rows {
		rows[row] = make([]byte, panels)
		transformRow(buf, row, rows[row])
	}
	return rows
}

// transformRow fills dst with the register byte of each panel for one row.
// len(dst) is the panel count.
func transformRow(buf []byte, row int, dst []byte) {
	for panel := range dst {
		base := panel*PanelCells + row

		var b byte
		for col := 0; col < PanelSize; col++ {
			i := base + col*PanelSize
			if i < len(buf) && buf[i] != 0 {
				b |= 0x80 >> col
			}
		}
		dst[panel] = b
	}
}

// Untransform is the inverse of Transform: it rebuilds a pixel buffer, with
// lit cells set to 1, from per-row panel bytes.
func Untransform(rows [][]byte) []byte {
	if len(rows) == 0 {
		return nil
	}

	panels := len(rows[0])
	buf := make([]byte, BufferLen(panels))
	for row := 0; row < PanelSize && row < len(rows); row++ {
		for panel := 0; panel < panels && panel < len(rows[row]); panel++ {
			b := rows[row][panel]
			for col := 0; col < PanelSize; col++ {
				if b&(0x80>>col) != 0 {
					buf[panel*PanelCells+col*PanelSize+row] = 1
				}
			}
		}
	}
	return buf
}
