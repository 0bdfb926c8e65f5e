package tower

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/games/tower/level"
)

// hudRows is the number of screen rows above the play area.
const hudRows = 1

// Visual characters for rendering
const (
	PlayerChar     = '@'
	PlayerBodyChar = '█'
)

type glyph struct {
	r, alt rune // Alternating runes along the platform
	color  core.Color
}

var platformGlyphs = map[level.PlatformType]glyph{
	level.Normal:        {'=', '=', core.ColorWhite},
	level.Wide:          {'=', '=', core.ColorBrightGreen},
	level.Narrow:        {'-', '-', core.ColorCyan},
	level.Ice:           {'~', '~', core.ColorIce},
	level.Boost:         {'^', '=', core.ColorBrightYellow},
	level.ConveyorRight: {'>', '=', core.ColorBlue},
	level.Crumble:       {':', '.', core.ColorOrange},
	level.Magnetic:      {'#', '#', core.ColorMagenta},
	level.Spring:        {'z', 'Z', core.ColorBrightGreen},
	level.Fragile:       {'░', '░', core.ColorGray},
	level.Moving:        {'<', '>', core.ColorBrightBlue},
	level.Disappearing:  {'▒', '▒', core.ColorBrightMagenta},
	level.Golden:        {'$', '$', core.ColorGold},
	level.Toxic:         {'x', 'x', core.ColorToxic},
	level.Teleport:      {'◊', '◊', core.ColorBrightCyan},
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if g.glyphs == nil || w != g.glyphW || h != g.glyphH {
		g.glyphs = make(map[string][]core.Cell)
		g.glyphW, g.glyphH = w, h
	}

	sx := float64(w) / g.cfg.World.Width
	sy := float64(h-hudRows) / g.cfg.World.Height

	for _, p := range g.platforms.Platforms() {
		g.drawPlatform(dst, p, sx, sy)
	}
	g.drawPlayer(dst, sx, sy)
	for _, p := range g.hud.Popups() {
		x := int(p.X*sx) - len([]rune(p.Text))/2
		dst.DrawTextColored(x, g.row(p.Y, sy)-2, p.Text, p.Color)
	}

	g.drawHUD(dst)
	if g.debug {
		g.drawDebug(dst)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Height: %d  |  Press R to restart", g.summary.Score, g.summary.Height))
	}
}

// row maps a world y to a screen row.
func (g *Game) row(y, sy float64) int {
	return hudRows + int(math.Floor((y-g.cameraY)*sy))
}

func (g *Game) drawPlatform(dst *core.Screen, p *level.Platform, sx, sy float64) {
	if !p.Enabled && p.Alpha <= 0 {
		return
	}
	y := g.row(p.Top(), sy)
	if y < hudRows || y >= dst.Height() {
		return
	}

	run := g.glyphRun(p, sx)
	x0 := int(math.Round(p.Left() * sx))
	n := max(1, int(math.Round(p.Width*sx)))

	faded := p.Used || p.Alpha < 0.5
	for i := 0; i < n && i < len(run); i++ {
		c := run[i]
		if faded {
			c.Color = core.ColorDim
		}
		dst.SetColored(x0+i, y, c.Rune, c.Color)
	}
}

// glyphRun returns the cached cells for a platform's texture key. Runs
// are built for the whole width bucket and sliced per platform.
func (g *Game) glyphRun(p *level.Platform, sx float64) []core.Cell {
	key := g.textures.Key(p.Type, p.Width, p.Height)
	if run, ok := g.glyphs[key]; ok {
		return run
	}

	gl, ok := platformGlyphs[p.Type]
	if !ok {
		gl = platformGlyphs[level.Normal]
	}
	n := int(math.Ceil(float64(BucketWidth(p.Width))*sx)) + 1
	run := make([]core.Cell, n)
	for i := range run {
		r := gl.r
		if i%2 == 1 {
			r = gl.alt
		}
		run[i] = core.Cell{Rune: r, Color: gl.color}
	}
	g.glyphs[key] = run
	return run
}

func (g *Game) drawPlayer(dst *core.Screen, sx, sy float64) {
	_, bodyH := g.world.Size()
	x := int(g.world.CenterX() * sx)
	feet := g.row(g.world.Bottom(), sy) - 1
	rows := max(1, int(math.Round(bodyH*sy)))

	color := core.ColorBrightWhite
	if !g.jump.CanDoubleJump() && !g.world.Grounded() {
		color = core.ColorGray
	}
	for i := 0; i < rows; i++ {
		r := PlayerBodyChar
		if i == rows-1 {
			r = PlayerChar
		}
		if y := feet - i; y >= hudRows {
			dst.SetColored(x, y, r, color)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	status := fmt.Sprintf(" Score: %d  Height: %d  Best: %d  HP: %d ",
		g.hud.Score(), g.hud.Height(), g.highScore.Best(), g.health)
	dst.DrawText(0, 0, status)

	if combo, ok := g.hud.Combo(); ok {
		text := fmt.Sprintf(" Combo x%d ", combo.Count)
		dst.DrawTextColored(dst.Width()-len(text), 0, text, core.ColorBrightCyan)
	}
}

func (g *Game) drawDebug(dst *core.Screen) {
	s := g.platforms.Stats()
	pattern := s.Pattern
	if pattern == "" {
		pattern = "-"
	}
	lines := []string{
		fmt.Sprintf("platforms %d  gen %d  evict %d", s.Active, s.Generated, s.Evicted),
		fmt.Sprintf("frontier %.0f  camera %.0f", s.Frontier, g.cameraY),
		fmt.Sprintf("gap %.0f  pattern %s", s.LargestGap, pattern),
		fmt.Sprintf("level %.2f  textures %d", g.difficulty.HeightProgress(float64(g.height)), g.textures.Len()),
	}
	for i, line := range lines {
		dst.DrawTextColored(dst.Width()-len(line)-1, hudRows+i, line, core.ColorDim)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	box := dst.CenteredRect(max(len(title), len(subtitle))+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(box.X+(box.W-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(box.W-len(subtitle))/2, box.Y+3, subtitle)
}
