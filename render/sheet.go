package render

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/spritestudio"
)

// CellRegion describes one cell of a sprite sheet: a sub-rectangle of a
// page image and the pivot the part's transform is applied around.
type CellRegion struct {
	Name    string
	Page    uint16
	X, Y    int
	Width   int
	Height  int
	PivotX  float64 // fraction of Width, 0.5 is centered
	PivotY  float64
	Rotated bool // stored 90 degrees clockwise on the page
}

// Sheet is a sprite sheet: page images plus cells indexed by cell id. It
// satisfies spritestudio.Sheet.
type Sheet struct {
	Pages []*ebiten.Image
	cells []CellRegion
}

// CellCount returns the number of cells.
func (s *Sheet) CellCount() int {
	return len(s.cells)
}

// Cell returns the region of cellID, or the magenta placeholder when out of
// range.
func (s *Sheet) Cell(cellID int) CellRegion {
	if cellID >= 0 && cellID < len(s.cells) {
		return s.cells[cellID]
	}
	if spritestudio.Debug() {
		log.Printf("render: cell %d not found, using magenta placeholder", cellID)
	}
	return magentaRegion()
}

// CellByName returns the id of the named cell.
func (s *Sheet) CellByName(name string) (int, bool) {
	for i := range s.cells {
		if s.cells[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// SubImage returns the page sub-image of cellID.
func (s *Sheet) SubImage(cellID int) *ebiten.Image {
	r := s.Cell(cellID)
	if r.Page == magentaPlaceholderPage || int(r.Page) >= len(s.Pages) {
		return ensureMagentaImage()
	}
	w, h := r.Width, r.Height
	if r.Rotated {
		w, h = h, w
	}
	return s.Pages[r.Page].SubImage(image.Rect(r.X, r.Y, r.X+w, r.Y+h)).(*ebiten.Image)
}

// NewSheet builds a sheet from explicit regions, in cell id order.
func NewSheet(pages []*ebiten.Image, cells []CellRegion) *Sheet {
	return &Sheet{Pages: pages, cells: cells}
}

var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage never collides with a real page.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() CellRegion {
	return CellRegion{Page: magentaPlaceholderPage, Width: 1, Height: 1, PivotX: 0.5, PivotY: 0.5}
}

// LoadSheet parses TexturePacker JSON into a sheet. The array format
// ("frames" as a list) keeps the listed order as cell ids; the hash format
// orders cells by name; the multi-page format ("textures") numbers cells
// page by page.
func LoadSheet(jsonData []byte, pages []*ebiten.Image) (*Sheet, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("render: failed to parse sheet JSON: %w", err)
	}

	sheet := &Sheet{Pages: pages}
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("render: failed to parse sheet textures array: %w", err)
		}
		for i, tex := range textures {
			sheet.cells = append(sheet.cells, hashCells(tex.Frames, uint16(i))...)
		}
	case probe.Frames != nil:
		if err := parseFrames(probe.Frames, sheet); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("render: sheet JSON has neither \"frames\" nor \"textures\" key")
	}
	return sheet, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonPivot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonFrame struct {
	Filename string     `json:"filename"`
	Frame    jsonRect   `json:"frame"`
	Rotated  bool       `json:"rotated"`
	Pivot    *jsonPivot `json:"pivot"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func parseFrames(raw json.RawMessage, sheet *Sheet) error {
	var list []jsonFrame
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, f := range list {
			sheet.cells = append(sheet.cells, frameToCell(f.Filename, f, 0))
		}
		return nil
	}
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("render: failed to parse sheet frames: %w", err)
	}
	sheet.cells = hashCells(frames, 0)
	return nil
}

func hashCells(frames map[string]jsonFrame, page uint16) []CellRegion {
	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)
	cells := make([]CellRegion, 0, len(names))
	for _, name := range names {
		cells = append(cells, frameToCell(name, frames[name], page))
	}
	return cells
}

func frameToCell(name string, f jsonFrame, page uint16) CellRegion {
	c := CellRegion{
		Name:    name,
		Page:    page,
		X:       f.Frame.X,
		Y:       f.Frame.Y,
		Width:   f.Frame.W,
		Height:  f.Frame.H,
		PivotX:  0.5,
		PivotY:  0.5,
		Rotated: f.Rotated,
	}
	if f.Rotated {
		// frame holds the rotated footprint
		c.Width, c.Height = f.Frame.H, f.Frame.W
	}
	if f.Pivot != nil {
		c.PivotX, c.PivotY = f.Pivot.X, f.Pivot.Y
	}
	return c
}
