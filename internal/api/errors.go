package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/torchnode/internal/torch"
	"github.com/smazurov/torchnode/internal/updater"
)

func mapTorchError(err error) error {
	switch torch.Code(err) {
	case torch.ErrCodeNoFlash:
		return huma.Error409Conflict(err.Error())
	case torch.ErrCodeNotFound:
		return huma.Error404NotFound(err.Error())
	default:
		return huma.Error500InternalServerError("torch operation failed", err)
	}
}

func mapUpdateError(err error) error {
	switch updater.Code(err) {
	case updater.ErrCodeNotFound:
		return huma.Error404NotFound(err.Error())
	case updater.ErrCodeDisabled:
		return huma.Error403Forbidden(err.Error())
	case updater.ErrCodeNoUpdate:
		return huma.Error409Conflict(err.Error())
	case updater.ErrCodeCheckFailed:
		return huma.Error502BadGateway("failed to check for updates", err)
	default:
		return huma.Error500InternalServerError("update failed", err)
	}
}
