package display

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

const eventBufferSize = 64

// Terminal renders the screen into a terminal using termbox. Every pixel is
// drawn as two cells wide to keep the aspect ratio.
type Terminal struct {
	logger *log.Logger
	events chan termbox.Event
	done   chan struct{}
	keys   keyHolder
	quit   bool
}

// NewTerminal initializes the terminal and starts reading key events.
func NewTerminal(logger *log.Logger) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &Terminal{
		logger: logger,
		events: make(chan termbox.Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	defer close(t.done)

	for {
		event := termbox.PollEvent()
		switch event.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			t.logger.Error("Reading terminal event failed", log.Err(event.Err))
			return
		case termbox.EventKey:
			select {
			case t.events <- event:
			default: // drop key events while the machine is not consuming them
			}
		}
	}
}

// Render draws the screen at the top left corner of the terminal. Rows and
// columns that do not fit into the terminal are skipped.
func (t *Terminal) Render(screen Screen) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	width, height := termbox.Size()
	for y := range min(chip8.ScreenHeight, height) {
		for x := range min(chip8.ScreenWidth, width/2) {
			if !screen.Pixel(x, y) {
				continue
			}
			termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
		}
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Input processes all pending key events. Escape and Ctrl+C request to quit.
func (t *Terminal) Input(keypad *chip8.Keypad) bool {
	for {
		select {
		case event := <-t.events:
			t.handleKey(event)
			continue
		default:
		}
		break
	}

	t.keys.apply(keypad)
	return t.quit
}

func (t *Terminal) handleKey(event termbox.Event) {
	switch event.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		t.quit = true
		return
	}

	key, ok := mapKey(event.Ch)
	if !ok {
		return
	}
	t.keys.press(key)
}

// Close stops the event reader and restores the terminal.
func (t *Terminal) Close() error {
	select {
	case <-t.done: // reader stopped after an error
	default:
		termbox.Interrupt()
		<-t.done
	}
	termbox.Close()
	return nil
}
