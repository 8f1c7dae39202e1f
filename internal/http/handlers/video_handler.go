package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *services.VideoService
	log          *zap.Logger
}

func NewVideoHandler(videoService *services.VideoService, log *zap.Logger) *VideoHandler {
	return &VideoHandler{videoService: videoService, log: log}
}

func (h *VideoHandler) Attach(c *fiber.Ctx) error {
	packageID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	var req dto.AttachVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	v, err := h.videoService.Attach(c.UserContext(), packageID, services.VideoInput{
		URL:             req.URL,
		Status:          req.Status,
		DurationSeconds: req.Duration.Int64(),
		Prompt:          req.Prompt,
		AspectRatio:     req.AspectRatio,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: v})
}

func (h *VideoHandler) UpdateStatus(c *fiber.Ctx) error {
	packageID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	videoID, ok := paramID(c, "videoId")
	if !ok {
		return badRequest(c, "invalid video id")
	}
	var req dto.UpdateVideoStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	if err := h.videoService.UpdateStatus(c.UserContext(), packageID, videoID, req.Status); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *VideoHandler) Remove(c *fiber.Ctx) error {
	packageID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	videoID, ok := paramID(c, "videoId")
	if !ok {
		return badRequest(c, "invalid video id")
	}

	if err := h.videoService.Remove(c.UserContext(), packageID, videoID); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
