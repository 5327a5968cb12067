// Command gen drives a menu through its press states with synthetic pointer
// input, captures framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/piemenu"
	"github.com/go-theft-auto/piemenu/backend/opengl"
)

const (
	shotWidth  = 480
	shotHeight = 360
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scene is the state shared by a screenshot script.
type scene struct {
	sched  *piemenu.FrameScheduler
	canvas *piemenu.MenuCanvas
	router *piemenu.Router
	ctrl   *piemenu.Controller
	region piemenu.Rect
}

// screenshot defines a single menu state to capture.
type screenshot struct {
	name   string                 // filename without extension
	region piemenu.Rect           // pressable region
	theme  func(t *piemenu.Theme) // theme tweaks, may be nil
	script func(s *scene)         // pointer input and elapsed time
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	painter, err := opengl.NewPainter(shotWidth, shotHeight)
	if err != nil {
		return fmt.Errorf("painter: %w", err)
	}
	defer painter.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(painter, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func newScene(s screenshot) *scene {
	theme := piemenu.DefaultTheme()
	if s.theme != nil {
		s.theme(&theme)
	}

	sched := piemenu.NewFrameScheduler()
	store := piemenu.NewActivationStore()
	canvas := piemenu.NewMenuCanvas(store, sched,
		piemenu.WithCanvasTheme(theme),
		piemenu.WithViewport(piemenu.Rect{W: shotWidth, H: shotHeight}))
	router := piemenu.NewRouter(canvas)

	ctrl := piemenu.NewController(store, canvas, sched,
		piemenu.WithBounds(s.region),
		piemenu.WithActions(
			piemenu.Action{ID: "copy", Label: "Copy"},
			piemenu.Action{ID: "share", Label: "Share"},
			piemenu.Action{ID: "delete", Label: "Delete"},
		))
	router.Register(ctrl)

	return &scene{sched: sched, canvas: canvas, router: router, ctrl: ctrl, region: s.region}
}

func capture(painter *opengl.Painter, s screenshot, outDir string) error {
	sc := newScene(s)
	defer sc.ctrl.Dispose()
	if s.script != nil {
		s.script(sc)
	}

	gl.Viewport(0, 0, shotWidth, shotHeight)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	paint(painter, sc)

	// Read pixels
	pixels := make([]byte, shotWidth*shotHeight*4)
	gl.ReadPixels(0, 0, shotWidth, shotHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := shotWidth * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < shotHeight/2; y++ {
		top := y * rowLen
		bot := (shotHeight - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, shotWidth, shotHeight))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func paint(painter *opengl.Painter, sc *scene) {
	c := sc.ctrl
	child := sc.region.Scale(c.BounceScale())
	painter.FillRect(child, piemenu.WithAlpha(piemenu.RGBA(70, 130, 180, 255), c.ChildOpacity()))

	t := c.Theme()
	painter.FillOverlay(piemenu.WithAlpha(t.OverlayColor, c.OverlayOpacity()), t.OverlayStyle, child)

	for _, b := range sc.canvas.Buttons() {
		color := piemenu.RGBA(220, 220, 220, 255)
		if b.Hovered {
			color = piemenu.RGBA(255, 200, 60, 255)
		}
		painter.FillRect(b.Rect(), color)
	}
	painter.Flush()
}

func press(p piemenu.Vec2) piemenu.PointerEvent {
	return piemenu.PointerEvent{Position: p, Buttons: piemenu.ButtonPrimary, Kind: piemenu.PointerMouse}
}

// release is also used for hover motion with no button held.
func release(p piemenu.Vec2) piemenu.PointerEvent {
	return piemenu.PointerEvent{Position: p, Kind: piemenu.PointerMouse}
}

// buildScreenshots returns the list of all menu screenshots to generate.
func buildScreenshots() []screenshot {
	center := piemenu.Rect{X: 160, Y: 200, W: 160, H: 110}
	top := piemenu.Rect{X: 160, Y: 20, W: 160, H: 90}
	origin := center.Center()

	longPress := func(s *scene) {
		s.router.PointerDown(press(origin))
		s.sched.Advance(s.ctrl.Theme().Delay)
		s.router.PointerUp(release(origin))
		s.sched.Advance(300 * time.Millisecond)
	}

	return []screenshot{
		{name: "rest", region: center},
		{
			name: "pressed", region: center,
			theme: func(t *piemenu.Theme) { t.ChildBounceFactor = 0.85 },
			script: func(s *scene) {
				s.router.PointerDown(press(origin))
				s.sched.Advance(s.ctrl.Theme().Delay + 75*time.Millisecond)
			},
		},
		{name: "open_around", region: center, script: longPress},
		{
			name: "open_behind", region: center,
			theme:  func(t *piemenu.Theme) { t.OverlayStyle = piemenu.OverlayBehind },
			script: longPress,
		},
		{
			name: "hover", region: center,
			script: func(s *scene) {
				longPress(s)
				s.router.PointerMove(release(s.canvas.Buttons()[1].Center))
				s.sched.Advance(300 * time.Millisecond)
			},
		},
		{
			name: "flipped", region: top,
			script: func(s *scene) {
				p := top.Center()
				s.router.PointerDown(press(p))
				s.sched.Advance(s.ctrl.Theme().Delay)
				s.router.PointerUp(release(p))
				s.sched.Advance(300 * time.Millisecond)
			},
		},
	}
}
