package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/torchnode/internal/api/models"
)

func (s *Server) registerTorchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-torch",
		Method:      http.MethodGet,
		Path:        "/api/torch",
		Summary:     "Get Flashlight",
		Description: "Current flashlight screen state: toggle button, strobe slider and availability",
		Tags:        []string{"torch"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.PanelResponse, error) {
		return &models.PanelResponse{Body: s.panel.View()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "toggle-torch",
		Method:      http.MethodPost,
		Path:        "/api/torch/toggle",
		Summary:     "Press Toggle",
		Description: "Press the flashlight button. At level 0 the torch switches steadily; above 0 the strobe starts or stops",
		Tags:        []string{"torch"},
		Errors:      []int{401, 409, 500},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.PanelResponse, error) {
		view, err := s.panel.Press()
		if err != nil {
			return nil, mapTorchError(err)
		}
		return &models.PanelResponse{Body: view}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-torch-slider",
		Method:      http.MethodPut,
		Path:        "/api/torch/slider",
		Summary:     "Move Slider",
		Description: "Move the strobe slider. Set finished when the drag ends to apply the new rate to a running strobe",
		Tags:        []string{"torch"},
		Errors:      []int{400, 401, 409, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.SliderRequest) (*models.PanelResponse, error) {
		view := s.panel.SetSlider(input.Body.Position)
		if input.Body.Finished {
			var err error
			view, err = s.panel.FinishSlider()
			if err != nil {
				return nil, mapTorchError(err)
			}
		}
		return &models.PanelResponse{Body: view}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-torch-device",
		Method:      http.MethodGet,
		Path:        "/api/torch/device",
		Summary:     "Get Torch Device",
		Description: "LED device behind the flashlight and the strobe interval of every slider level",
		Tags:        []string{"torch"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.DeviceResponse, error) {
		rate := s.panel.Rate()
		levels := make([]models.LevelData, 0, rate.Max+1)
		for level := 0; level <= rate.Max; level++ {
			var ms int64
			if level > 0 {
				ms = rate.Interval(level).Milliseconds()
			}
			levels = append(levels, models.LevelData{Level: level, IntervalMs: ms})
		}

		return &models.DeviceResponse{
			Body: models.DeviceData{
				Name:           s.torch.DeviceName(),
				FlashAvailable: s.torch.FlashAvailable(),
				Lit:            s.torch.Lit(),
				Levels:         levels,
			},
		}, nil
	})
}
