// Package render rasterises a host window into terminal cells.
//
// One cell covers CellWidth x CellHeight device pixels, so the 144x168
// screen becomes a 36x21 grid. Layers are painted bottom first: the window
// background, then each child's background and text. Numeric fonts use a
// three-row block glyph set; every other font draws one character per cell.
package render
