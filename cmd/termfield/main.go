// Terminal field - renders the particle field, rain and icons with tcell.
//
// Usage: go run ./cmd/termfield [-config config.yaml] [-seed N]
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/cyberfield/config"
	"github.com/pthm-cable/cyberfield/game"
	"github.com/pthm-cable/cyberfield/renderer"
	"github.com/pthm-cable/cyberfield/systems"
)

type command int

const (
	cmdQuit command = iota
	cmdResize
	cmdPause
	cmdReset
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	// The screen owns stdout, so logs go to stderr
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to initialize screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	canvas := renderer.NewTermCanvas(screen)
	bounds := canvas.Bounds()

	field, err := game.NewField(cfg, bounds, rngSeed)
	if err != nil {
		screen.Fini()
		slog.Error("failed to create field", "error", err)
		os.Exit(1)
	}
	rain, err := game.NewRain(cfg, bounds, rngSeed)
	if err != nil {
		screen.Fini()
		slog.Error("failed to create rain", "error", err)
		os.Exit(1)
	}
	icons := systems.NewIconSystem(bounds, game.IconOptions(cfg), rand.New(rand.NewSource(rngSeed+2)))

	var typing *systems.TypingEffect
	if len(cfg.Typing.Phrases) > 0 {
		if typing, err = systems.NewTypingEffect(cfg.Typing.Phrases, game.TypingTimings(cfg)); err != nil {
			screen.Fini()
			slog.Error("failed to create typing effect", "error", err)
			os.Exit(1)
		}
	}

	commands := make(chan command, 16)
	go pollEvents(screen, commands)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	frameTime := time.Second / time.Duration(max(1, cfg.Screen.TargetFPS))
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-sigChan:
			return
		case cmd := <-commands:
			switch cmd {
			case cmdQuit:
				return
			case cmdPause:
				paused = !paused
			case cmdReset:
				field.Reset()
			case cmdResize:
				canvas.Sync()
				b := canvas.Bounds()
				if err := field.Resize(b); err != nil {
					// Zero-sized terminal; keep the old bounds until it grows
					continue
				}
				rain.Resize(b)
				icons.Resize(b)
			}
		case <-ticker.C:
			if !paused {
				field.Tick()
				rain.Tick()
				icons.Tick(frameTime.Seconds())
				typing.Update(frameTime)
			}

			canvas.ResetDrawCalls()
			field.Render(canvas)
			rain.Render(canvas)
			icons.Render(canvas)
			if typing != nil {
				b := canvas.Bounds()
				canvas.DrawText("> "+typing.Text()+"_", systems.Vec2{X: renderer.CellWidth, Y: b.Height - renderer.CellHeight}, 14, cfg.Derived.ConnectionColor, 1)
			}
			canvas.Show()
		}
	}
}

// pollEvents forwards key and resize events to the render loop.
func pollEvents(screen tcell.Screen, out chan<- command) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				out <- cmdQuit
				return
			case ev.Rune() == ' ':
				out <- cmdPause
			case ev.Rune() == 'r':
				out <- cmdReset
			}
		case *tcell.EventResize:
			out <- cmdResize
		}
	}
}
