// Example shows two pressable regions sharing one radial menu canvas.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Press and hold a region to open its menu, right-click the second region
// to open it at once, or click for a plain press. Pass -theme to load a
// TOML theme file and -v for debug logging.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/piemenu"
	"github.com/go-theft-auto/piemenu/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "piemenu example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	themePath := flag.String("theme", "", "TOML theme file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	piemenu.SetVerbose(*verbose)

	if err := run(*themePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(themePath string) error {
	theme := piemenu.DefaultTheme()
	if themePath != "" {
		var err error
		theme, err = piemenu.LoadTheme(themePath)
		if err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	painter, err := opengl.NewPainter(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("painter: %w", err)
	}
	defer painter.Delete()

	sched := piemenu.NewFrameScheduler()
	store := piemenu.NewActivationStore()
	canvas := piemenu.NewMenuCanvas(store, sched,
		piemenu.WithCanvasTheme(theme),
		piemenu.WithViewport(piemenu.Rect{W: windowWidth, H: windowHeight}))
	router := piemenu.NewRouter(canvas)

	actions := func(region string) []piemenu.Action {
		var out []piemenu.Action
		for _, name := range []string{"copy", "share", "delete"} {
			out = append(out, piemenu.Action{
				ID:    name,
				Label: name,
				OnSelect: func() {
					slog.Info("action selected", "region", region, "action", name)
				},
			})
		}
		return out
	}

	rightClickTheme := theme
	rightClickTheme.RightClickShowsMenu = true

	regions := []struct {
		name  string
		rect  piemenu.Rect
		color uint32
		opts  []piemenu.Option
	}{
		{"left", piemenu.Rect{X: 120, Y: 220, W: 200, H: 160}, piemenu.RGBA(70, 130, 180, 255), nil},
		{"right", piemenu.Rect{X: 480, Y: 220, W: 200, H: 160}, piemenu.RGBA(180, 110, 70, 255),
			[]piemenu.Option{piemenu.WithTheme(rightClickTheme)}},
	}

	controllers := make([]*piemenu.Controller, len(regions))
	for i, r := range regions {
		name := r.name
		opts := append([]piemenu.Option{
			piemenu.WithBounds(r.rect),
			piemenu.WithActions(actions(name)...),
			piemenu.OnPressedWithDevice(func(kind piemenu.PointerKind) {
				slog.Info("pressed", "region", name, "device", kind)
			}),
			piemenu.OnToggle(func(active bool) {
				slog.Info("menu toggled", "region", name, "active", active)
			}),
		}, r.opts...)
		controllers[i] = piemenu.NewController(store, canvas, sched, opts...)
		router.Register(controllers[i])
	}
	defer func() {
		for _, c := range controllers {
			c.Dispose()
		}
	}()

	input := opengl.NewGLFWInputAdapter(window, router)
	input.SetContentScale(window.GetContentScale())

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := time.Now()
		sched.Advance(now.Sub(last))
		last = now

		w, h := window.GetFramebufferSize()
		painter.Resize(w, h)
		canvas.SetViewport(piemenu.Rect{W: float32(w), H: float32(h)})
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		activeRegion := -1
		for i, c := range controllers {
			if c.OverlayOpacity() > 0 {
				activeRegion = i
			}
			painter.FillRect(regions[i].rect.Scale(c.BounceScale()),
				piemenu.WithAlpha(regions[i].color, c.ChildOpacity()))
		}
		if activeRegion >= 0 {
			c := controllers[activeRegion]
			t := c.Theme()
			painter.FillOverlay(piemenu.WithAlpha(t.OverlayColor, c.OverlayOpacity()),
				t.OverlayStyle, regions[activeRegion].rect.Scale(c.BounceScale()))
		}
		for _, b := range canvas.Buttons() {
			color := piemenu.RGBA(220, 220, 220, 255)
			if b.Hovered {
				color = piemenu.RGBA(255, 200, 60, 255)
			}
			painter.FillRect(b.Rect(), color)
		}
		painter.Flush()

		window.SwapBuffers()
	}

	return nil
}
