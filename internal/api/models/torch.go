package models

// PanelData is the rendered state of the flashlight screen.
type PanelData struct {
	Title             string  `json:"title" example:"Flashlight" doc:"Top bar title"`
	FlashAvailable    bool    `json:"flash_available" example:"true" doc:"Whether a torch LED was found"`
	Message           string  `json:"message,omitempty" example:"No flash available" doc:"Message shown instead of the controls"`
	SliderMax         int     `json:"slider_max" example:"9" doc:"Highest strobe level"`
	Ticks             []int   `json:"ticks" doc:"Tick labels drawn above the slider"`
	SliderPosition    float64 `json:"slider_position" example:"3" doc:"Current slider position"`
	Level             int     `json:"level" example:"3" doc:"Strobe level, 0 means steady light"`
	IntervalMs        int64   `json:"interval_ms" example:"240" doc:"Strobe interval for the current level"`
	TorchOn           bool    `json:"torch_on" example:"false" doc:"Toggle button state"`
	StrobeRunning     bool    `json:"strobe_running" example:"false" doc:"Whether the strobe loop is active"`
	ButtonTint        string  `json:"button_tint" example:"red" doc:"Toggle button tint"`
	ButtonDescription string  `json:"button_description" example:"Turn flashlight on" doc:"Accessible description of the toggle button"`
}

type PanelResponse struct {
	Body PanelData
}

// SliderRequest moves the strobe slider.
type SliderRequest struct {
	Body struct {
		Position float64 `json:"position" minimum:"0" example:"4" doc:"New slider position"`
		Finished bool    `json:"finished,omitempty" example:"true" doc:"Whether the drag gesture ended; restarts a running strobe"`
	}
}

// DeviceData describes the torch device behind the panel.
type DeviceData struct {
	Name           string      `json:"name" example:"white:flash" doc:"LED class device name"`
	FlashAvailable bool        `json:"flash_available" example:"true" doc:"Whether the device can be driven"`
	Lit            bool        `json:"lit" example:"false" doc:"Last state written to the device"`
	Levels         []LevelData `json:"levels" doc:"Strobe interval for every slider level"`
}

type LevelData struct {
	Level      int   `json:"level" example:"1" doc:"Slider level"`
	IntervalMs int64 `json:"interval_ms" example:"320" doc:"Strobe interval in milliseconds, 0 for steady light"`
}

type DeviceResponse struct {
	Body DeviceData
}
