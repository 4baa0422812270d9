package mapper

import (
	"strings"

	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/compilation/dto"
	"github.com/OmatthewY/explore-with-me/modules/compilation/entity"
	eventdto "github.com/OmatthewY/explore-with-me/modules/event/dto"
)

func ToCompilationEntity(req *dto.NewCompilationRequest) *entity.Compilation {
	compilation := &entity.Compilation{Title: strings.TrimSpace(req.Title)}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}
	return compilation
}

func ApplyUpdate(compilation *entity.Compilation, req *dto.UpdateCompilationRequest) {
	if !utils.IsBlank(req.Title) {
		compilation.Title = strings.TrimSpace(*req.Title)
	}
	if req.Pinned != nil {
		compilation.Pinned = *req.Pinned
	}
}

func ToCompilationResponse(compilation *entity.Compilation, events []eventdto.EventShortResponse) *dto.CompilationResponse {
	if events == nil {
		events = []eventdto.EventShortResponse{}
	}
	return &dto.CompilationResponse{
		Events: events,
		ID:     compilation.ID,
		Pinned: compilation.Pinned,
		Title:  compilation.Title,
	}
}
