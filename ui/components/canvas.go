package components

import (
	"strings"

	"github.com/velin-dev/uisketch/internal/geometry"
	"github.com/velin-dev/uisketch/internal/interaction"
	"github.com/velin-dev/uisketch/internal/models"
	"github.com/velin-dev/uisketch/internal/render"
	"github.com/velin-dev/uisketch/ui/styles"
)

// cellGrid is a fixed-size rune buffer the canvas is composited into.
type cellGrid struct {
	cols, rows int
	cells      [][]rune
}

func newCellGrid(cols, rows int) *cellGrid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &cellGrid{cols: cols, rows: rows, cells: cells}
}

func (g *cellGrid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y][x] = r
}

func (g *cellGrid) text(x, y int, s string, maxWidth int) {
	for i, r := range s {
		if i >= maxWidth {
			break
		}
		g.set(x+i, y, r)
	}
}

func (g *cellGrid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

type borderSet struct {
	tl, tr, bl, br, h, v rune
}

var (
	solidBorder    = borderSet{'┌', '┐', '└', '┘', '─', '│'}
	selectedBorder = borderSet{'╔', '╗', '╚', '╝', '═', '║'}
	pendingBorder  = borderSet{'┌', '┐', '└', '┘', '╌', '┆'}
	invalidBorder  = borderSet{'·', '·', '·', '·', '·', '·'}
)

// cellRect converts unit bounds to a cell rectangle.
func cellRect(b geometry.Bounds) (x, y, w, h int) {
	x = int(b.X / models.CellUnitWidth)
	y = int(b.Y / models.CellUnitHeight)
	w = int(b.Width / models.CellUnitWidth)
	h = int(b.Height / models.CellUnitHeight)
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return
}

func (g *cellGrid) box(b geometry.Bounds, set borderSet) (innerX, innerY, innerW, innerH int) {
	x, y, w, h := cellRect(b)
	for i := 1; i < w-1; i++ {
		g.set(x+i, y, set.h)
		g.set(x+i, y+h-1, set.h)
	}
	for i := 1; i < h-1; i++ {
		g.set(x, y+i, set.v)
		g.set(x+w-1, y+i, set.v)
	}
	g.set(x, y, set.tl)
	g.set(x+w-1, y, set.tr)
	g.set(x, y+h-1, set.bl)
	g.set(x+w-1, y+h-1, set.br)
	return x + 1, y + 1, w - 2, h - 2
}

// RenderCanvas composites the committed regions, the pending region, and
// the live gesture into the canvas viewport. During a drag or resize the
// controller's candidate bounds paint instead of the committed ones.
func RenderCanvas(appModel *models.AppModel, ctrl *interaction.Controller, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := newCellGrid(width, height)

	for _, region := range appModel.Regions {
		bounds := region.Bounds
		if candidate, ok := ctrl.CandidateFor(region.ID); ok {
			bounds = candidate
		}
		set := solidBorder
		if region.ID == appModel.SelectedID {
			set = selectedBorder
		}
		drawRegion(grid, region, bounds, set, appModel.LoadingDots)
	}

	if appModel.Pending != nil {
		innerX, innerY, innerW, _ := grid.box(appModel.Pending.Bounds, pendingBorder)
		grid.text(innerX, innerY, "describe this region...", innerW)
	}

	if sel, committable, active := ctrl.Selection(); active {
		set := invalidBorder
		if committable {
			set = pendingBorder
		}
		grid.box(sel, set)
	}

	return styles.CanvasStyle().Render(grid.String())
}

func drawRegion(grid *cellGrid, region models.Region, bounds geometry.Bounds, set borderSet, dots int) {
	innerX, innerY, innerW, innerH := grid.box(bounds, set)
	if innerW <= 0 || innerH <= 0 {
		return
	}

	grid.text(innerX, innerY, region.Prompt, innerW)
	switch {
	case region.Loading:
		grid.text(innerX, innerY+1, "generating"+strings.Repeat(".", dots), innerW)
	case region.Error != "":
		grid.text(innerX, innerY+1, "! "+region.Error, innerW)
	case region.Component != nil:
		node, _ := render.Render(region.Component)
		lines := strings.Split(render.Serialize(componentFromDisplay(node)), "\n")
		for i, line := range lines {
			if i+1 >= innerH {
				break
			}
			grid.text(innerX, innerY+1+i, line, innerW)
		}
	}
}

// componentFromDisplay maps a sanitized display tree back to the node
// shape the serializer takes, so the canvas previews what rendering
// produced rather than the raw gateway payload.
func componentFromDisplay(node *render.DisplayNode) *models.ComponentNode {
	if node == nil {
		return nil
	}
	out := &models.ComponentNode{
		Element:   node.Tag,
		ClassName: node.ClassName,
		Props:     node.Attrs,
		Content:   node.Content,
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, componentFromDisplay(child))
	}
	return out
}
