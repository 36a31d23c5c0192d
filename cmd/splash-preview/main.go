// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// splash-preview runs the whole splash lifecycle in a desktop window. The
// window stands in for the compositor: it provides one output matching the
// window size, a desktop surface below the splash and the cursor.
//
// Keys: H hides the splash, S shows it again, Escape quits. The control
// socket works as on a device, so `splashctl --socket PATH` hides it too.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/pflag"

	"github.com/gogpu/bootsplash"
	"github.com/gogpu/bootsplash/config"
	"github.com/gogpu/bootsplash/eventloop"
	"github.com/gogpu/bootsplash/internal/preview"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		image       string
		placement   string
		socket      string
		logLevel    string
		width       int
		height      int
		framebuffer bool
		showDelay   time.Duration
		exitOnHide  bool
	)

	flagSet := pflag.NewFlagSet("splash-preview", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvVar+")")
	flagSet.StringVarP(&image, "image", "i", "", "splash image path")
	flagSet.StringVar(&placement, "placement", "", "oversized image policy: center or fit")
	flagSet.StringVarP(&socket, "socket", "s", "", "control socket path, empty string disables")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn, error or off")
	flagSet.IntVar(&width, "width", 0, "initial window width")
	flagSet.IntVar(&height, "height", 0, "initial window height")
	flagSet.BoolVar(&framebuffer, "framebuffer", false, "also draw on the framebuffer device")
	flagSet.DurationVar(&showDelay, "show-delay", time.Second, "simulated compositor startup time")
	flagSet.BoolVar(&exitOnHide, "exit-on-hide", false, "quit once the splash is hidden")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("image") {
		cfg.Image = image
	}
	if flagSet.Changed("placement") {
		cfg.Placement = placement
	}
	if flagSet.Changed("socket") {
		cfg.Control.Socket = socket
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flagSet.Changed("width") {
		cfg.Preview.Width = width
	}
	if flagSet.Changed("height") {
		cfg.Preview.Height = height
	}
	// A desktop session rarely owns /dev/fb0.
	cfg.Framebuffer.Enabled = framebuffer
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Image == "" {
		return errors.New("no splash image: pass --image or set image in the config file")
	}

	bootsplash.SetLogger(cfg.Logger())

	loop := eventloop.New()
	session := bootsplash.New(loop, cfg.Image, cfg.Options()...)
	host, err := preview.NewHost(loop, session, cfg.Preview.Width, cfg.Preview.Height, showDelay)
	if err != nil {
		session.Destroy()
		return err
	}
	defer host.Close()

	ebiten.SetWindowTitle(cfg.Preview.Title)
	ebiten.SetWindowSize(cfg.Preview.Width, cfg.Preview.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(&game{host: host, session: session, exitOnHide: exitOnHide})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// game adapts a preview host to ebiten.Game.
type game struct {
	host       *preview.Host
	session    *bootsplash.Session
	exitOnHide bool

	layoutWidth  int
	layoutHeight int
	cursorHidden bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.host.Resize(g.layoutWidth, g.layoutHeight)
	g.host.Step(time.Now())

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.host.Hide()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.host.Show()
	}

	if hidden := g.host.CursorHidden(); hidden != g.cursorHidden {
		g.cursorHidden = hidden
		if hidden {
			ebiten.SetCursorMode(ebiten.CursorModeHidden)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
	}

	if g.exitOnHide && g.session.State() == bootsplash.Hidden {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.host.Frame()
	if frame.Bounds().Size() != screen.Bounds().Size() {
		// Layout changed since the last Update.
		return
	}
	screen.WritePixels(frame.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutWidth, g.layoutHeight = outsideWidth, outsideHeight
	w, h := g.host.Size()
	return w, h
}
