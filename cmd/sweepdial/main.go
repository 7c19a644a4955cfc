package main

import (
	"context"
	"flag"
	"image"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sweepdial/sweepdial/internal/config"
	"github.com/sweepdial/sweepdial/internal/display"
	"github.com/sweepdial/sweepdial/internal/pace"
	"github.com/sweepdial/sweepdial/internal/raster"
	"github.com/sweepdial/sweepdial/internal/render"
	"github.com/sweepdial/sweepdial/internal/render/scenes/clock"
	"github.com/sweepdial/sweepdial/internal/render/scenes/metro"
	"github.com/sweepdial/sweepdial/internal/stream"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		variant    = flag.String("variant", "clock", "animation variant: clock | metronome")
		width      = flag.Int("width", 480, "initial canvas width")
		height     = flag.Int("height", 480, "initial canvas height")
		rate       = flag.Int("rate", 1, "clock hand ticks per second")
		bpm        = flag.Int("bpm", 96, "metronome beats per minute")
		fps        = flag.Int("fps", 60, "frame rate for metronome and headless modes")
		title      = flag.String("title", "sweepdial", "window title")
		background = flag.String("background", "#101418", "background color (#RRGGBB)")
		accent     = flag.String("accent", "#4B5F64", "accent color (#RRGGBB)")
		headless   = flag.Bool("headless", false, "serve frames over websocket instead of opening a window")
		addr       = flag.String("addr", ":8080", "HTTP listen address for -headless")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}

	// ---- Effective params (config overrides flags where available) ----
	dflt := config.Default()
	eVariant := *variant
	eW, eH := *width, *height
	eRate, eBPM, eFPS := *rate, *bpm, *fps
	eTitle := *title
	eBackground, eAccent := *background, *accent
	rateBounds := dflt.Rate
	bpmBounds := dflt.Metronome
	eStroke, ePadding := dflt.StrokeRatio, dflt.PaddingRatio

	if cfg != nil {
		if cfg.Variant != "" {
			eVariant = cfg.Variant
		}
		if cfg.Window.Width > 0 {
			eW = cfg.Window.Width
		}
		if cfg.Window.Height > 0 {
			eH = cfg.Window.Height
		}
		if cfg.Window.Title != "" {
			eTitle = cfg.Window.Title
		}
		if cfg.Rate.Initial > 0 {
			eRate = cfg.Rate.Initial
		}
		if cfg.Rate.Max > 0 {
			rateBounds = cfg.Rate
		}
		if cfg.Metronome.BPM > 0 {
			eBPM = cfg.Metronome.BPM
		}
		if cfg.Metronome.Max > 0 {
			bpmBounds = cfg.Metronome
		}
		if cfg.FPS > 0 {
			eFPS = cfg.FPS
		}
		if cfg.Colors.Background != "" {
			eBackground = cfg.Colors.Background
		}
		if cfg.Colors.Accent != "" {
			eAccent = cfg.Colors.Accent
		}
		if cfg.StrokeRatio > 0 {
			eStroke = cfg.StrokeRatio
		}
		if cfg.PaddingRatio > 0 {
			ePadding = cfg.PaddingRatio
		}
	}

	bg, err := config.ParseColor(eBackground)
	if err != nil {
		log.Fatal().Err(err).Msg("bad background color")
	}
	fg, err := config.ParseColor(eAccent)
	if err != nil {
		log.Fatal().Err(err).Msg("bad accent color")
	}

	// ---- Variant registry ----
	reg := render.NewRegistry()
	reg.Register(clock.New())
	reg.Register(metro.New())
	v, ok := reg.Get(eVariant)
	if !ok {
		log.Warn().Str("variant", eVariant).Strs("known", reg.List()).Msg("unknown variant; using clock")
		v, _ = reg.Get("clock")
	}

	// ---- Rate state (saturating steppers per input step) ----
	rateStep := pace.NewStepper(eRate, rateBounds.Min, rateBounds.Max, rateBounds.Step)
	bpmStep := pace.NewStepper(eBPM, bpmBounds.Min, bpmBounds.Max, bpmBounds.Step)
	// The FPS flag is user input like the rate keys; clamp it the same way.
	eFPS = pace.NewStepper(eFPS, 1, 240, 1).Value()

	u := &render.Uniforms{
		Background:   bg,
		Accent:       fg,
		StrokeRatio:  eStroke,
		PaddingRatio: ePadding,
		Rate:         float64(rateStep.Value()),
		BPM:          float64(bpmStep.Value()),
	}

	eng, err := render.NewEngine(raster.Dimensions{Width: eW, Height: eH}, v, u, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}
	sched := pace.NewScheduler(eng.Start())

	// The clock redraws only when the hand moves, so its tick rate IS the
	// frame rate. The metronome animates continuously and repaints at the
	// configured FPS while the keys step the BPM.
	var frameRate func() int
	var ctrl stream.Controls
	var adjust func(up bool) int
	var set func(v int) int
	switch v.Name() {
	case "metronome":
		frameRate = func() int { return eFPS }
		ctrl.Name = "bpm"
		ctrl.Value = bpmStep.Value
		adjust = func(up bool) int {
			if up {
				bpmStep.Inc()
			} else {
				bpmStep.Dec()
			}
			u.BPM = float64(bpmStep.Value())
			return bpmStep.Value()
		}
		set = func(n int) int {
			u.BPM = float64(bpmStep.Set(n))
			return bpmStep.Value()
		}
	default:
		frameRate = rateStep.Value
		ctrl.Name = "rate"
		ctrl.Value = rateStep.Value
		adjust = func(up bool) int {
			if up {
				rateStep.Inc()
			} else {
				rateStep.Dec()
			}
			u.Rate = float64(rateStep.Value())
			return rateStep.Value()
		}
		set = func(n int) int {
			u.Rate = float64(rateStep.Set(n))
			return rateStep.Value()
		}
	}

	ctrl.Adjust = adjust
	ctrl.Set = set

	if *headless {
		runHeadless(eng, sched, frameRate, ctrl, *addr)
		return
	}

	win := display.NewWindow(eTitle, eW, eH, eng, sched, frameRate, func(up bool) { adjust(up) })
	eng.SetSink(win)
	ebiten.SetWindowIcon([]image.Image{
		display.Icon(16, v, u),
		display.Icon(32, v, u),
		display.Icon(48, v, u),
	})

	log.Info().Str("variant", v.Name()).Int("rate", rateStep.Value()).Msg("opening window")
	if err := win.Run(); err != nil {
		log.Fatal().Err(err).Msg("window loop failed")
	}
}

func runHeadless(eng *render.Engine, sched *pace.Scheduler, frameRate func() int, controls stream.Controls, addr string) {
	// Control messages arrive on websocket goroutines while the render loop
	// reads the same steppers and uniforms; one lock serializes both.
	var mu sync.Mutex
	lockedRate := func() int {
		mu.Lock()
		defer mu.Unlock()
		return frameRate()
	}
	lockedControls := stream.Controls{
		Name: controls.Name,
		Value: func() int {
			mu.Lock()
			defer mu.Unlock()
			return controls.Value()
		},
		Adjust: func(up bool) int {
			mu.Lock()
			defer mu.Unlock()
			return controls.Adjust(up)
		},
		Set: func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return controls.Set(n)
		},
	}

	srv := stream.NewServer(lockedRate, eng.LastRenderMS, lockedControls)
	eng.SetSink(srv)

	mux := http.NewServeMux()
	srv.Routes(mux)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := pace.Loop(ctx, sched, lockedRate, func(now time.Time) error {
			mu.Lock()
			defer mu.Unlock()
			return eng.RenderOnce(now.Sub(eng.Start()).Seconds())
		})
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("render loop stopped")
		}
	}()
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server starting")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	cancel()
	_ = httpSrv.Close()
}
