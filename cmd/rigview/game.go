package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/input/ebitensource"
	"github.com/Carmen-Shannon/oxy-rts/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-rts/engine/physics"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	gridSpacing = 5
	gridExtent  = 200
)

// Game draws the rig from above: the base, the camera and the patch of
// ground its frustum covers, next to a physics body steered by the walker.
type Game struct {
	logger *slog.Logger
	width  int
	height int
	scale  float32 // pixels per world unit

	src    ebitensource.Source
	cam    camera.Camera
	world  physics.World
	sink   physics.KinematicRig
	rc     rig.RigController
	walker locomotion.Walker
	body   physics.Body

	driveWalker bool
}

// NewGame wires the rig, the walker and the physics world from cfg.
func NewGame(cfg *config.Config, scale float32, logger *slog.Logger) (*Game, error) {
	g := &Game{
		logger: logger,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		scale:  scale,
	}

	opts, err := cfg.Input.BufferOptions()
	if err != nil {
		return nil, err
	}
	g.src = ebitensource.NewSource(input.NewBuffer(opts...), func() int { return g.height })

	g.world = physics.NewWorld()
	g.sink = g.world.NewKinematicRig(
		transform.WithPosition(cfg.Rig.InitialPosition),
		transform.WithYaw(cfg.Rig.InitialYaw),
		transform.WithLocalOffset(cfg.Rig.InitialOffset),
	)
	g.cam = camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDegrees)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithViewport(g.width, g.height),
		camera.WithViewpoint(g.sink),
	)

	g.rc, err = rig.NewRigController(g.src, g.sink,
		rig.WithConfig(cfg.Rig),
		rig.WithRayCaster(g.cam),
		rig.WithViewport(g.cam),
		rig.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building rig controller: %w", err)
	}

	g.body = g.world.NewBody(physics.WithStartPosition(mgl32.Vec3{4, 0, -4}))
	g.walker, err = locomotion.NewWalker(g.body, g.src, cfg.Walker, logger)
	if err != nil {
		return nil, fmt.Errorf("building walker: %w", err)
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.driveWalker = !g.driveWalker
		g.logger.Info("control switched", "walker", g.driveWalker)
	}

	dt := float32(1 / float64(ebiten.TPS()))
	g.src.Poll()
	frame := g.src.Frame()
	g.cam.Update()

	// both consumers share the keyboard axis, so only the driven one gets it
	rigFrame, walkerFrame := frame, input.Frame{JumpPressed: frame.JumpPressed}
	if g.driveWalker {
		rigFrame.MoveAxis = mgl32.Vec2{}
		walkerFrame = frame
	}

	g.rc.Update(rigFrame, dt)
	g.walker.Update(walkerFrame, dt)
	g.world.Tick(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	center := g.rc.BasePosition()

	g.drawGrid(screen, center)
	g.drawFootprint(screen, center)

	base := g.toScreen(center, center)
	eye := g.toScreen(g.sink.Eye(), center)
	vector.StrokeLine(screen, base.X(), base.Y(), eye.X(), eye.Y(), 1, colornames.Lightgrey, true)
	vector.FillCircle(screen, base.X(), base.Y(), 4, colornames.Orange, true)
	vector.StrokeCircle(screen, eye.X(), eye.Y(), 5, 2, colornames.White, true)

	g.drawBody(screen, center)

	mode := "rig"
	if g.driveWalker {
		mode = "walker"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"drive: %s (tab)\nbase: %.1f %.1f yaw %.0f\nheight: %.1f\nbody: %.1f %.1f h %.2f\ntps: %.0f",
		mode, center.X(), center.Z(), g.rc.Yaw(), g.rc.Height(),
		g.body.Position().X(), g.body.Position().Z(), g.body.Height(), ebiten.ActualTPS(),
	), 10, 10)
}

// drawGrid draws ground lines every gridSpacing units around the base.
func (g *Game) drawGrid(screen *ebiten.Image, center mgl32.Vec3) {
	originX := float32(math.Floor(float64(center.X())/gridSpacing)) * gridSpacing
	originZ := float32(math.Floor(float64(center.Z())/gridSpacing)) * gridSpacing
	for i := float32(-gridExtent); i <= gridExtent; i += gridSpacing {
		clr := color.RGBA{R: 60, G: 80, B: 80, A: 255}
		if originX+i == 0 {
			clr = color.RGBA{R: 160, G: 60, B: 60, A: 255}
		}
		a := g.toScreen(mgl32.Vec3{originX + i, 0, originZ - gridExtent}, center)
		b := g.toScreen(mgl32.Vec3{originX + i, 0, originZ + gridExtent}, center)
		vector.StrokeLine(screen, a.X(), a.Y(), b.X(), b.Y(), 1, clr, false)

		clr = color.RGBA{R: 60, G: 80, B: 80, A: 255}
		if originZ+i == 0 {
			clr = color.RGBA{R: 60, G: 60, B: 160, A: 255}
		}
		a = g.toScreen(mgl32.Vec3{originX - gridExtent, 0, originZ + i}, center)
		b = g.toScreen(mgl32.Vec3{originX + gridExtent, 0, originZ + i}, center)
		vector.StrokeLine(screen, a.X(), a.Y(), b.X(), b.Y(), 1, clr, false)
	}
}

// drawFootprint outlines where the screen corners of the rig camera land on the ground.
// Corners above the horizon are skipped.
func (g *Game) drawFootprint(screen *ebiten.Image, center mgl32.Vec3) {
	w, h := float32(g.cam.Width()), float32(g.cam.Height())
	corners := []mgl32.Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}

	var hits []mgl32.Vec2
	for _, c := range corners {
		ray, ok := g.cam.CastRay(c)
		if !ok {
			continue
		}
		if _, point, ok := g.cam.IntersectPlane(ray, common.GroundPlane); ok {
			hits = append(hits, g.toScreen(point, center))
		}
	}
	for i := range hits {
		a, b := hits[i], hits[(i+1)%len(hits)]
		vector.StrokeLine(screen, a.X(), a.Y(), b.X(), b.Y(), 2, colornames.Gold, true)
	}
}

// drawBody draws the walker body, greyed out while the rig camera cannot see it.
func (g *Game) drawBody(screen *ebiten.Image, center mgl32.Vec3) {
	pos := g.body.Position()
	p := g.toScreen(pos, center)
	r := g.body.Radius() * g.scale * (1 + g.body.Height()*0.2)

	clr := colornames.Dimgray
	if g.cam.Frustum().ContainsSphere(pos, g.body.Radius()) {
		clr = colornames.Seagreen
		if g.body.Airborne() {
			clr = colornames.Lightgreen
		}
	}
	vector.FillCircle(screen, p.X(), p.Y(), r, clr, true)

	facing := common.YawRotation(g.body.Yaw()).Rotate(mgl32.Vec3{0, 0, -1})
	tip := g.toScreen(pos.Add(facing.Mul(g.body.Radius()*1.5)), center)
	vector.StrokeLine(screen, p.X(), p.Y(), tip.X(), tip.Y(), 2, colornames.White, true)
}

// toScreen maps a world point to pixels with center in the middle of the screen.
// World -Z points up the screen.
func (g *Game) toScreen(p, center mgl32.Vec3) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(g.width)/2 + (p.X()-center.X())*g.scale,
		float32(g.height)/2 + (p.Z()-center.Z())*g.scale,
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.cam.SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
