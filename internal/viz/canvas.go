package viz

import (
	"math"
	"strings"

	"github.com/san-kum/mechlab/internal/mechanics"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is Width x Height braille cells, addressed in dots: the dot grid
// is (Width*2) x (Height*4) with y growing downward.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, mask rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= mask
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= mask
		c.Grid[row][col] |= brailleBlank
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, mask, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&mask != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FillCircle sets every dot within r of the center.
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world metres onto canvas dots. World y grows upward unless
// YDown is set.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
	YDown                  bool
	dotW, dotH             int
	scale                  float64
}

// Fit returns a viewport showing the world rectangle on c with equal x and
// y scale, centred.
func Fit(c *Canvas, minX, minY, maxX, maxY float64, yDown bool) *Viewport {
	if maxX <= minX {
		maxX = minX + 1
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	v := &Viewport{
		MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY,
		YDown: yDown,
		dotW:  c.DotWidth(),
		dotH:  c.DotHeight(),
	}
	v.scale = math.Min(float64(v.dotW-1)/(maxX-minX), float64(v.dotH-1)/(maxY-minY))
	return v
}

// Scale is dots per metre.
func (v *Viewport) Scale() float64 { return v.scale }

func (v *Viewport) ToScreen(p mechanics.Vec2) (int, int) {
	offX := (float64(v.dotW-1) - (v.MaxX-v.MinX)*v.scale) / 2
	offY := (float64(v.dotH-1) - (v.MaxY-v.MinY)*v.scale) / 2
	x := offX + (p.X-v.MinX)*v.scale
	var y float64
	if v.YDown {
		y = offY + (p.Y-v.MinY)*v.scale
	} else {
		y = offY + (v.MaxY-p.Y)*v.scale
	}
	return int(math.Round(x)), int(math.Round(y))
}

// Length converts a world distance to dots.
func (v *Viewport) Length(d float64) int {
	return int(math.Round(d * v.scale))
}
