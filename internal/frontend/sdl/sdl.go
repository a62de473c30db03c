//go:build sdl

// Package sdl implements a frontend that renders into an SDL window and plays
// a short tone through the default audio device on a beep.
package sdl

import (
	"fmt"
	"runtime"

	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// Compile-time check to ensure Frontend implements frontend.Frontend.
var _ frontend.Frontend = (*Frontend)(nil)

const (
	pixelScale = 10

	audioFrequency = 48000
	toneFrequency  = 440
	toneLength     = audioFrequency / 10 // samples, 100ms
	toneVolume     = 32
)

func init() {
	// SDL calls have to be made from the main thread.
	runtime.LockOSThread()
}

// Frontend renders into an SDL window.
type Frontend struct {
	logger *log.Logger
	layout keymap.Layout

	window   *sdl.Window
	renderer *sdl.Renderer

	audioDevice sdl.AudioDeviceID
	hasAudio    bool
	tone        []byte
}

// New returns a new SDL frontend.
func New(logger *log.Logger, layout keymap.Layout) *Frontend {
	return &Frontend{
		logger: logger,
		layout: layout,
		tone:   squareWave(),
	}
}

// Name returns the name of the frontend.
func (f *Frontend) Name() string {
	return frontend.SDL
}

// Open creates the window and renderer. Missing audio support is not fatal.
func (f *Frontend) Open() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		vm.ScreenWidth*pixelScale, vm.ScreenHeight*pixelScale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	f.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("creating renderer: %w", err)
	}
	f.renderer = renderer

	if err := f.openAudio(); err != nil {
		f.logger.Warn("Audio not available", log.Err(err))
	}
	return nil
}

func (f *Frontend) openAudio() error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	desired := &sdl.AudioSpec{
		Freq:     audioFrequency,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}
	var obtained sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, desired, &obtained, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return fmt.Errorf("opening audio device: %w", err)
	}

	f.audioDevice = device
	f.hasAudio = true
	sdl.PauseAudioDevice(device, false)
	return nil
}

// Poll forwards the pending keyboard events to the keypad.
func (f *Frontend) Poll(keys frontend.Keypad) (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true, nil

		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				return true, nil
			}
			index, ok := f.layout.Key(rune(e.Keysym.Sym))
			if !ok {
				continue
			}
			keys.SetKey(index, e.Type == sdl.KEYDOWN)
		}
	}
	return false, nil
}

// Render draws set pixels black on a white background.
func (f *Frontend) Render(display frontend.Display) error {
	r := f.renderer
	if err := r.SetDrawColor(0xFF, 0xFF, 0xFF, 0xFF); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := r.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := r.SetDrawColor(0x00, 0x00, 0x00, 0xFF); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}

	for y := 0; y < vm.ScreenHeight; y++ {
		for x := 0; x < vm.ScreenWidth; x++ {
			if !display.PixelAt(x, y) {
				continue
			}
			rect := &sdl.Rect{X: int32(x * pixelScale), Y: int32(y * pixelScale), W: pixelScale, H: pixelScale}
			if err := r.FillRect(rect); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}

	r.Present()
	return nil
}

// Beep queues a short tone.
func (f *Frontend) Beep() {
	if !f.hasAudio {
		return
	}
	if err := sdl.QueueAudio(f.audioDevice, f.tone); err != nil {
		f.logger.Debug("Queueing tone failed", log.Err(err))
	}
}

// Close destroys the window and shuts down SDL.
func (f *Frontend) Close() error {
	if f.hasAudio {
		sdl.CloseAudioDevice(f.audioDevice)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		f.hasAudio = false
	}
	if f.renderer != nil {
		_ = f.renderer.Destroy()
		f.renderer = nil
	}
	if f.window != nil {
		_ = f.window.Destroy()
		f.window = nil
	}
	sdl.Quit()
	return nil
}

// squareWave returns the unsigned 8 bit samples of the beep tone.
func squareWave() []byte {
	const halfPeriod = audioFrequency / toneFrequency / 2

	samples := make([]byte, toneLength)
	for i := range samples {
		if (i/halfPeriod)%2 == 0 {
			samples[i] = 0x80 + toneVolume
		} else {
			samples[i] = 0x80 - toneVolume
		}
	}
	return samples
}
