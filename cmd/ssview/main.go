// Command ssview plays an animation document in a window.
//
// Without -sheet, cells render from a generated 8-tile palette sheet so a
// document can be previewed before its art exists. Controls:
//
//	space        play / stop
//	left, right  previous / next animation of the pack
//	up, down     ramp play speed
//	wheel        zoom
//	B            toggle bounds
//	P            screenshot
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/spritestudio"
	"github.com/phanxgames/spritestudio/ecs"
	"github.com/phanxgames/spritestudio/render"
)

const (
	windowTitle = "spritestudio viewer"
	screenW     = 960
	screenH     = 640

	fileID    spritestudio.FileID = 1
	tileSize                      = 32
	gridCols                      = 4
	maxEvents                     = 6
)

var paletteColors = [8]color.RGBA{
	{R: 255, G: 79, B: 40, A: 255},
	{R: 40, G: 120, B: 255, A: 255},
	{R: 99, G: 181, B: 61, A: 255},
	{R: 220, G: 220, B: 79, A: 255},
	{R: 255, G: 255, B: 199, A: 255},
	{R: 61, G: 40, B: 99, A: 255},
	{R: 199, G: 160, B: 255, A: 255},
	{R: 181, G: 200, B: 232, A: 255},
}

// paletteJSON describes the generated palette page in TexturePacker array
// format so cell ids follow the tile order.
func paletteJSON() []byte {
	var b strings.Builder
	b.WriteString(`{"frames":[`)
	for i := range paletteColors {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"filename":"tile%d","frame":{"x":%d,"y":%d,"w":%d,"h":%d}}`,
			i, (i%gridCols)*tileSize, (i/gridCols)*tileSize, tileSize, tileSize)
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

func paletteSheet() (*render.Sheet, error) {
	page := ebiten.NewImage(gridCols*tileSize, 2*tileSize)
	for i, c := range paletteColors {
		x, y := (i%gridCols)*tileSize, (i/gridCols)*tileSize
		page.SubImage(image.Rect(x, y, x+tileSize, y+tileSize)).(*ebiten.Image).Fill(c)
	}
	return render.LoadSheet(paletteJSON(), []*ebiten.Image{page})
}

// loadSheet reads a TexturePacker JSON file and the page images it names,
// resolved relative to the JSON file.
func loadSheet(path string, pages []string) (*render.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	imgs := make([]*ebiten.Image, 0, len(pages))
	for _, p := range pages {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		img, _, err := ebitenutil.NewImageFromFile(p)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", p, err)
		}
		imgs = append(imgs, img)
	}
	return render.LoadSheet(data, imgs)
}

// cycle returns the name after (step 1) or before (step -1) cur in names,
// wrapping around.
func cycle(names []string, cur string, step int) string {
	if len(names) == 0 {
		return cur
	}
	idx := 0
	for i, n := range names {
		if n == cur {
			idx = i
			break
		}
	}
	idx = ((idx+step)%len(names) + len(names)) % len(names)
	return names[idx]
}

// eventLog keeps the most recent animation events for the overlay.
type eventLog struct {
	lines []string
}

func (l *eventLog) add(e spritestudio.Event) {
	l.lines = append(l.lines, fmt.Sprintf("%s %s/%s", e.Type, e.Pack, e.Animation))
	if len(l.lines) > maxEvents {
		l.lines = l.lines[len(l.lines)-maxEvents:]
	}
}

type game struct {
	store    *spritestudio.Store
	world    donburi.World
	system   *ecs.System
	renderer *render.Renderer
	camera   *render.Camera
	shots    render.Screenshots
	entity   donburi.Entity
	speed    *spritestudio.TweenGroup
	watcher  *spritestudio.Watcher
	events   eventLog
	fpsAcc   float64
	fpsText  string
}

func newGame(store *spritestudio.Store, key spritestudio.PlayKey) *game {
	g := &game{
		store:    store,
		world:    donburi.NewWorld(),
		system:   ecs.NewSystem(store),
		renderer: &render.Renderer{},
		camera:   render.NewCamera(spritestudio.Rect{Width: screenW, Height: screenH}),
	}
	g.entity = ecs.NewAnimated(g.world, key, spritestudio.NewPlacement(0, 0), ecs.RootMotion)
	g.player().Time.Play(1)
	g.camera.Follow(g.placement, 0, 0, 0.1)
	ecs.AnimationEventType.Subscribe(g.world, func(_ donburi.World, e spritestudio.Event) {
		g.events.add(e)
	})
	return g
}

func (g *game) player() *spritestudio.Player {
	return ecs.Animation.Get(g.world.Entry(g.entity))
}

func (g *game) placement() (float64, float64, bool) {
	if !g.world.Valid(g.entity) {
		return 0, 0, false
	}
	p := ecs.Placement.Get(g.world.Entry(g.entity))
	return p.X, p.Y, true
}

func (g *game) handleInput() {
	p := g.player()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if p.Time.IsPlaying() {
			p.Time.Stop()
		} else {
			p.Time.Play(0)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyRight), inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		step := 1
		if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
			step = -1
		}
		key := p.Key()
		if data, ok := g.store.Data(key.File); ok {
			if pack, ok := data.Pack(key.Pack); ok {
				key.Animation = cycle(pack.AnimationNames(), key.Animation, step)
				p.SetKey(key)
				p.Time.SetPlayTime(0)
			}
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.speed = spritestudio.TweenPlaySpeed(&p.Time, p.Time.PlaySpeed()*2, 0.5, ease.OutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.speed = spritestudio.TweenPlaySpeed(&p.Time, p.Time.PlaySpeed()/2, 0.5, ease.OutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.renderer.DrawBounds = !g.renderer.DrawBounds
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.shots.Queue(p.Key().Pack + "-" + p.Key().Animation)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.Zoom = min(max(g.camera.Zoom*(1+wy*0.1), 0.1), 10)
	}
}

func (g *game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-g.watcher.Reloads:
			if !ok {
				g.watcher = nil
				return
			}
			if r.Err != nil {
				log.Printf("reload %s: %v", r.Path, r.Err)
				continue
			}
			g.store.AddData(r.File, r.Data)
			log.Printf("reloaded %s", r.Path)
		default:
			return
		}
	}
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.applyReloads()
	g.handleInput()
	if g.speed != nil {
		g.speed.Update(float32(dt))
		if g.speed.Done {
			g.speed = nil
		}
	}
	if err := g.system.Update(g.world, dt); err != nil {
		log.Printf("update: %v", err)
	}
	events.ProcessAllEvents(g.world)
	g.camera.Update(float32(dt))

	g.fpsAcc += dt
	if g.fpsAcc >= 0.5 {
		g.fpsAcc = 0
		g.fpsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 26, G: 26, B: 38, A: 255})
	view := g.camera.View()
	g.renderer.View = &view
	g.system.Draw(g.world, screen, g.renderer)

	p := g.player()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%s/%s\n%s\n\n%s",
		g.fpsText, p.Key().Pack, p.Key().Animation, p.Time.String(), strings.Join(g.events.lines, "\n")))

	paths, err := g.shots.Flush(screen)
	if err != nil {
		log.Printf("screenshot: %v", err)
	}
	for _, path := range paths {
		log.Printf("wrote %s", path)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	var (
		file   = flag.String("file", "", "animation document (YAML)")
		sheet  = flag.String("sheet", "", "TexturePacker JSON for map id 0 (default: generated palette)")
		pages  = flag.String("pages", "", "comma-separated page images of -sheet")
		pack   = flag.String("pack", "", "pack to play (default: first)")
		anim   = flag.String("anim", "", "animation to play (default: first)")
		watch  = flag.Bool("watch", false, "reload the document when it changes")
		bounds = flag.Bool("bounds", false, "draw part bounds")
		shots  = flag.String("shots", "screenshots", "screenshot directory")
		debug  = flag.Bool("debug", false, "log missing references")
	)
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}
	spritestudio.SetDebug(*debug)

	r := spritestudio.LoadFile(fileID, *file)
	if r.Err != nil {
		log.Fatalf("load %s: %v", *file, r.Err)
	}
	store := spritestudio.NewStore()
	store.AddData(fileID, r.Data)

	var s *render.Sheet
	var err error
	if *sheet == "" {
		s, err = paletteSheet()
	} else {
		var names []string
		for _, p := range strings.Split(*pages, ",") {
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		}
		s, err = loadSheet(*sheet, names)
	}
	if err != nil {
		log.Fatalf("sheet: %v", err)
	}
	store.AddSheets(fileID, s)

	key := spritestudio.PlayKey{File: fileID, Pack: *pack, Animation: *anim}
	if key, err = firstKey(r.Data, key); err != nil {
		log.Fatal(err)
	}

	g := newGame(store, key)
	g.renderer.DrawBounds = *bounds
	g.shots.Dir = *shots
	if *watch {
		if g.watcher, err = spritestudio.NewWatcher(map[spritestudio.FileID]string{fileID: *file}); err != nil {
			log.Fatalf("watch: %v", err)
		}
		defer g.watcher.Close()
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// firstKey fills an unset pack or animation with the first one by name.
func firstKey(data *spritestudio.Data, key spritestudio.PlayKey) (spritestudio.PlayKey, error) {
	if key.Pack == "" {
		names := data.PackNames()
		if len(names) == 0 {
			return key, fmt.Errorf("document has no packs")
		}
		key.Pack = names[0]
	}
	p, ok := data.Pack(key.Pack)
	if !ok {
		return key, fmt.Errorf("pack %q not found (have %v)", key.Pack, data.PackNames())
	}
	if key.Animation == "" {
		names := p.AnimationNames()
		if len(names) == 0 {
			return key, fmt.Errorf("pack %q has no animations", key.Pack)
		}
		key.Animation = names[0]
	}
	if _, ok := p.Animation(key.Animation); !ok {
		return key, fmt.Errorf("animation %q not found in pack %q", key.Animation, key.Pack)
	}
	return key, nil
}
