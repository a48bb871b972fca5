package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumanping/common"
	"github.com/milk9111/jumanping/game"
	"github.com/milk9111/jumanping/obj"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = colornames.Lightsteelblue
	playerColor     = colornames.Crimson
	platformColor   = colornames.Seagreen
	fallingColor    = colornames.Darkkhaki
)

func blockColor(b *obj.Block) color.Color {
	switch {
	case b.Mask().Solid():
		return colornames.Dimgray
	case b.Mask().Top:
		return colornames.Slategray
	}
	return colornames.Peru
}

// fillRect draws a world-space rect through the camera.
func fillRect(dst *ebiten.Image, cam *common.Camera, r common.Rect, clr color.Color) {
	x, y := cam.WorldToScreen(r.X, r.Y)
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(r.W), float32(r.H), clr, false)
}

func drawWorld(screen *ebiten.Image, loop *game.Loop, cam *common.Camera) {
	screen.Fill(backgroundColor)

	for _, b := range loop.Terrain().Blocks() {
		fillRect(screen, cam, b.Bounds(), blockColor(b))
	}

	snap := loop.Snapshot()
	for _, r := range snap.Platforms {
		fillRect(screen, cam, r, platformColor)
	}
	for _, r := range snap.Falling {
		fillRect(screen, cam, r, fallingColor)
	}

	fillRect(screen, cam, snap.Player, playerColor)
	// eye on the facing side
	eye := common.NewRect(snap.Player.X+4, snap.Player.Y+12, 6, 6)
	if snap.FacingRight {
		eye.SetRight(snap.Player.Right() - 4)
	}
	fillRect(screen, cam, eye, colornames.White)
}

func drawDebug(screen *ebiten.Image, loop *game.Loop, cam *common.Camera) {
	snap := loop.Snapshot()
	for _, b := range loop.Terrain().FindNearBlocks(snap.Player) {
		r := b.Bounds()
		x, y := cam.WorldToScreen(r.X, r.Y)
		vector.StrokeRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), 1, colornames.Yellow, false)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f  frame: %d  state: %s\npos: %.1f,%.1f  vel: %.1f,%.1f\nground: %t  coyote: %.3f  platforms: %d  falling: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), loop.Frame(), loop.State(),
		snap.Player.X, snap.Player.Y, snap.Vel.X, snap.Vel.Y,
		snap.OnGround, snap.CoyoteTimer, len(snap.Platforms), len(snap.Falling),
	))
}
