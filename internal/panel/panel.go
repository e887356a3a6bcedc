// Package panel holds the state of the flashlight screen: the strobe
// slider, the toggle button and whether the strobe loop is running. Every
// user gesture goes through a Panel method, which drives the torch and the
// strobe and publishes the resulting view.
package panel

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/smazurov/torchnode/internal/api/models"
	"github.com/smazurov/torchnode/internal/events"
	"github.com/smazurov/torchnode/internal/strobe"
	"github.com/smazurov/torchnode/internal/torch"
)

// Screen text.
const (
	Title            = "Flashlight"
	NoFlashMessage   = "No flash available"
	TintOn           = "green"
	TintOff          = "red"
	DescriptionOn    = "Turn flashlight off"
	DescriptionOff   = "Turn flashlight on"
	ActionOpen       = "open"
	ActionClose      = "close"
	ActionPress      = "press"
	ActionSlide      = "slide"
	ActionSlideEnd   = "slide-finished"
	ActionRateReload = "rate-reload"
)

// Torch is the subset of torch.Controller the panel uses.
type Torch interface {
	TurnOn() error
	TurnOff() error
	FlashAvailable() bool
}

// Strobe is the subset of strobe.Scheduler the panel uses.
type Strobe interface {
	Start(interval time.Duration)
	Stop()
}

// Publisher receives panel state changes.
type Publisher interface {
	Publish(ev events.Event)
}

// Panel is the flashlight screen state. It is safe for concurrent use.
type Panel struct {
	torch     Torch
	strobe    Strobe
	publisher Publisher
	logger    *slog.Logger

	mu            sync.Mutex
	rate          strobe.Rate
	position      float64
	torchOn       bool
	strobeRunning bool
}

// New creates a panel with the slider at 0 and the torch off.
func New(t Torch, s Strobe, rate strobe.Rate, publisher Publisher, logger *slog.Logger) *Panel {
	return &Panel{
		torch:     t,
		strobe:    s,
		publisher: publisher,
		logger:    logger,
		rate:      rate.Normalize(),
	}
}

// Open runs when the screen is shown: the torch is forced off so the
// button and the hardware agree.
func (p *Panel) Open() models.PanelData {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.torch.FlashAvailable() {
		if err := p.torch.TurnOff(); err != nil {
			p.logger.Warn("Failed to reset torch on open", "error", err)
		}
	} else {
		p.logger.Info(NoFlashMessage)
	}
	return p.changed(ActionOpen)
}

// Close runs when the screen goes away: the strobe stops and the torch
// is switched off.
func (p *Panel) Close() models.PanelData {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.strobeRunning {
		p.strobe.Stop()
		p.strobeRunning = false
	}
	if p.torchOn && p.torch.FlashAvailable() {
		if err := p.torch.TurnOff(); err != nil {
			p.logger.Warn("Failed to turn torch off on close", "error", err)
		}
	}
	p.torchOn = false
	return p.changed(ActionClose)
}

// SetSlider moves the slider. The position is clamped to [0, Max] and
// snapped to whole levels. A running strobe keeps its interval until
// FinishSlider.
func (p *Panel) SetSlider(position float64) models.PanelData {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.position = p.snap(position)
	return p.changed(ActionSlide)
}

// FinishSlider ends a drag. A running strobe is restarted with the new
// interval; if the slider is back at 0 the strobe stops and the torch stays
// steadily on. It does not keep strobing at the level 0 interval, which
// would leave the button and the light out of step.
func (p *Panel) FinishSlider() (models.PanelData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.torch.FlashAvailable() {
		return p.view(), noFlash()
	}

	var err error
	if p.strobeRunning {
		level := p.level()
		if level == 0 {
			p.strobe.Stop()
			p.strobeRunning = false
			err = p.torch.TurnOn()
			p.logger.Info("Strobe stopped, torch steady", "error", err)
		} else {
			interval := p.rate.Interval(level)
			p.strobe.Start(interval)
			p.logger.Info("Strobe rescheduled", "level", level, "interval", interval)
		}
	}
	return p.changed(ActionSlideEnd), err
}

// Press handles the toggle button. At level 0 it switches a steady light;
// above 0 it starts or stops the strobe. Pressing while the strobe runs
// always stops it. The button state only changes when the torch call
// succeeds, even though the failure has already been notified.
func (p *Panel) Press() (models.PanelData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.torch.FlashAvailable() {
		return p.view(), noFlash()
	}

	next := !p.torchOn && !p.strobeRunning
	level := p.level()

	var err error
	switch {
	case p.strobeRunning:
		p.strobe.Stop()
		p.strobeRunning = false
		p.torchOn = false
		err = p.torch.TurnOff()
	case level == 0 && next:
		err = p.torch.TurnOn()
	case level == 0:
		err = p.torch.TurnOff()
	case next:
		interval := p.rate.Interval(level)
		p.strobe.Start(interval)
		p.strobeRunning = true
		p.logger.Info("Strobe started", "level", level, "interval", interval)
	default:
		err = p.torch.TurnOff()
	}

	if err == nil {
		p.torchOn = next
	}
	p.logger.Info("Toggle pressed", "torch_on", p.torchOn, "level", level, "error", err)
	return p.changed(ActionPress), err
}

// SetRate replaces the slider mapping, e.g. after a config reload. A
// running strobe picks up the new interval immediately.
func (p *Panel) SetRate(rate strobe.Rate) models.PanelData {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rate = rate.Normalize()
	p.position = p.snap(p.position)

	if p.strobeRunning {
		if level := p.level(); level > 0 {
			p.strobe.Start(p.rate.Interval(level))
		}
	}
	return p.changed(ActionRateReload)
}

// Rate returns the current slider mapping.
func (p *Panel) Rate() strobe.Rate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

// View returns the current screen state.
func (p *Panel) View() models.PanelData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

func (p *Panel) snap(position float64) float64 {
	if math.IsNaN(position) {
		return 0
	}
	// Clamp as a float: level() converts to int, which overflows on huge values.
	position = min(max(position, 0), float64(p.rate.Max))
	return math.Round(position)
}

func (p *Panel) level() int {
	return int(math.Round(p.position))
}

// changed must be called with p.mu held.
func (p *Panel) changed(action string) models.PanelData {
	v := p.view()
	if p.publisher != nil {
		p.publisher.Publish(events.PanelStateChangedEvent{
			Panel:     v,
			Action:    action,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
	return v
}

func (p *Panel) view() models.PanelData {
	level := p.level()
	v := models.PanelData{
		Title:             Title,
		FlashAvailable:    p.torch.FlashAvailable(),
		SliderMax:         p.rate.Max,
		Ticks:             make([]int, p.rate.Max+1),
		SliderPosition:    p.position,
		Level:             level,
		TorchOn:           p.torchOn,
		StrobeRunning:     p.strobeRunning,
		ButtonTint:        TintOff,
		ButtonDescription: DescriptionOff,
	}
	for i := range v.Ticks {
		v.Ticks[i] = i
	}
	if level > 0 {
		v.IntervalMs = max(p.rate.Interval(level), p.rate.SleepFloor()).Milliseconds()
	}
	if !v.FlashAvailable {
		v.Message = NoFlashMessage
	}
	if p.torchOn {
		v.ButtonTint = TintOn
		v.ButtonDescription = DescriptionOn
	}
	return v
}

func noFlash() error {
	return &torch.Error{Code: torch.ErrCodeNoFlash, Message: NoFlashMessage}
}
