// Package app implements the main loop of the sample.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/assets"
	"github.com/Faultbox/shaderbasics/internal/config"
	"github.com/Faultbox/shaderbasics/internal/demo"
	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/internal/engine/control"
	"github.com/Faultbox/shaderbasics/internal/engine/geometry"
	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/input"
	"github.com/Faultbox/shaderbasics/internal/engine/renderer"
	"github.com/Faultbox/shaderbasics/internal/engine/scene"
	"github.com/Faultbox/shaderbasics/internal/engine/window"
	"github.com/Faultbox/shaderbasics/internal/logger"
)

const confirmTitle = "Exit? (Y/N)"

// App is the running sample.
type App struct {
	config     *config.Config
	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	assets     *assets.Manager
	camera     *camera.Camera
	controller *control.Controller
	scene      *scene.Scene
	log        *zap.Logger

	confirming bool
}

// New opens the window and loads the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{config: cfg, log: logger.Named("app")}
	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.assets = demo.NewAssets(a.renderer, cfg.Assets.Root)

	a.camera, err = demo.NewCamera(cfg, width, height)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}

	a.scene = demo.NewScene(cfg, a.camera)
	if _, err := demo.Load(cfg, a.scene, a.assets, a.renderer); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	a.controller = control.New(cfg.Camera.TranslateSpeed, cfg.Camera.RotateSpeed)
	a.controller.Visibility = a.scene
	a.controller.SetRenderState(gfx.RenderState{
		Wireframe:  cfg.Render.Wireframe,
		CullingOff: cfg.Render.CullingOff,
	})

	a.log.Info("initialized", zap.Int("objects", a.scene.Len()))
	return a, nil
}

// Run runs the loop until the window closes or exit is confirmed.
func (a *App) Run() error {
	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	var frameBudget time.Duration
	if a.config.Window.FPSLimit > 0 && !a.config.Window.VSync {
		frameBudget = time.Second / time.Duration(a.config.Window.FPSLimit)
	}

	a.log.Info("starting loop")
	for {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			return nil
		}
		if _, _, ok := a.input.Resized(); ok {
			if err := a.resize(); err != nil {
				return err
			}
		}

		// The camera moves before anything is drawn so every object sees the same view.
		a.controller.Update(a.camera, a.input.Controls(), float32(dt.Seconds()))
		if a.controller.Quit() {
			return nil
		}
		a.updateTitle()

		a.renderer.Begin(a.camera.ClearColor)
		frame := geometry.Frame{
			Time:  float32(now.Sub(start).Seconds()),
			State: a.controller.RenderState(),
		}
		if err := a.scene.Draw(frame); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
}

func (a *App) resize() error {
	width, height := a.window.DrawableSize()
	if width <= 0 || height <= 0 {
		// Minimized; keep the last viewport.
		return nil
	}
	a.renderer.Resize(width, height)
	if err := a.camera.SetViewport(width, height); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

func (a *App) updateTitle() {
	confirming := a.controller.ConfirmingExit()
	if confirming == a.confirming {
		return
	}
	a.confirming = confirming
	if confirming {
		a.window.SetTitle(a.config.Window.Title + " - " + confirmTitle)
	} else {
		a.window.SetTitle(a.config.Window.Title)
	}
}

// Close releases the scene, the assets and the window.
func (a *App) Close() {
	a.log.Info("closing")

	if a.scene != nil {
		a.scene.Dispose()
	}
	if a.assets != nil {
		a.assets.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
