package handler

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mfauzirh/dropout-predictor/internal/dto"
	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"github.com/mfauzirh/dropout-predictor/internal/repository"
	"github.com/mfauzirh/dropout-predictor/internal/response"
	"github.com/mfauzirh/dropout-predictor/internal/service"
	"github.com/mfauzirh/dropout-predictor/internal/usecase"
	"github.com/mfauzirh/dropout-predictor/internal/util"
	"gorm.io/gorm"
)

type PredictionHandler struct {
	uc       *usecase.PredictionUsecase
	predRepo *repository.PredictionRepository
	advisor  service.AdvisorServiceInterface
}

func NewPredictionHandler(uc *usecase.PredictionUsecase, predRepo *repository.PredictionRepository, advisor service.AdvisorServiceInterface) *PredictionHandler {
	return &PredictionHandler{uc: uc, predRepo: predRepo, advisor: advisor}
}

func (h *PredictionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/predictions/predict/:studentID", h.Predict)
	app.Post("/predictions/batch", h.PredictBatch)
	app.Get("/predictions/statistics", h.Statistics)
	app.Get("/predictions/high-risk", h.HighRisk)
	app.Get("/predictions/student/:studentID/latest", h.LatestForStudent)
	app.Get("/predictions/student/:studentID", h.StudentHistory)
	app.Get("/predictions/:id/similar", h.Similar)
	app.Get("/predictions/:id/advice", h.Advice)
	app.Get("/predictions/:id", h.Get)
	app.Get("/predictions", h.List)
}

func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	studentID := c.Params("studentID")
	save := c.QueryBool("save", true)

	outcome, err := h.uc.PredictStudent(studentID, save)
	if err != nil {
		return h.predictionError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success predict dropout risk",
		Data:    outcome,
	})
}

func (h *PredictionHandler) PredictBatch(c *fiber.Ctx) error {
	var req dto.BatchPredictRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if len(req.StudentIDs) == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "student_ids is required",
		}, nil)
	}
	save := true
	if req.SavePredictions != nil {
		save = *req.SavePredictions
	}

	items, summary := h.uc.PredictBatch(req.StudentIDs, save)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success predict batch",
		Data:    fiber.Map{"results": items, "summary": summary},
	})
}

func (h *PredictionHandler) Get(c *fiber.Ctx) error {
	pred, err := h.predRepo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "prediction not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get prediction",
		Data:    dto.NewPredictionDTO(pred),
	})
}

func (h *PredictionHandler) StudentHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	preds, err := h.predRepo.FindByStudent(c.Params("studentID"), limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get predictions",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get student predictions",
		Data:    dto.NewPredictionDTOs(preds),
	})
}

func (h *PredictionHandler) LatestForStudent(c *fiber.Ctx) error {
	pred, err := h.predRepo.Latest(c.Params("studentID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "no prediction for student",
			}, nil)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get latest prediction",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get latest prediction",
		Data:    dto.NewPredictionDTO(pred),
	})
}

func (h *PredictionHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if pageSize > 100 {
		pageSize = 100
	}
	riskLevel := c.Query("risk_level")

	preds, total, err := h.predRepo.List(page, pageSize, riskLevel)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list predictions",
		}, err)
	}
	totalPages := int64(math.Ceil(float64(total) / float64(pageSize)))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success list predictions",
		Data:    dto.NewPredictionDTOs(preds),
		Pagination: &response.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
			HasMore:    int64(page) < totalPages,
			From:       (page-1)*pageSize + 1,
			To:         (page-1)*pageSize + len(preds),
		},
	})
}

func (h *PredictionHandler) HighRisk(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	preds, err := h.predRepo.HighRisk(limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get high risk students",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get high risk students",
		Data:    dto.NewPredictionDTOs(preds),
	})
}

func (h *PredictionHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.predRepo.Statistics()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to get statistics",
		}, err)
	}
	pct := func(n int64) float64 {
		if stats.Total == 0 {
			return 0
		}
		return float64(n) / float64(stats.Total) * 100
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get prediction statistics",
		Data: fiber.Map{
			"total_predictions": stats.Total,
			"low_risk":          stats.Low,
			"medium_risk":       stats.Medium,
			"high_risk":         stats.High,
			"low_percentage":    pct(stats.Low),
			"medium_percentage": pct(stats.Medium),
			"high_percentage":   pct(stats.High),
		},
	})
}

func (h *PredictionHandler) Similar(c *fiber.Ctx) error {
	pred, err := h.predRepo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "prediction not found",
		}, err)
	}
	topK, _ := strconv.Atoi(c.Query("top_k", "5"))
	similar, err := h.predRepo.FindSimilar(pred.Features, topK)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to search similar predictions",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get similar predictions",
		Data:    dto.NewPredictionDTOs(similar),
	})
}

func (h *PredictionHandler) Advice(c *fiber.Ctx) error {
	if h.advisor == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotImplemented,
			Message: "advisor is not configured",
		}, nil)
	}
	pred, err := h.predRepo.FindByID(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "prediction not found",
		}, err)
	}
	var factors []ml.Factor
	if err := json.Unmarshal([]byte(pred.ContributingFactors), &factors); err != nil {
		factors = nil
	}
	advice, err := h.advisor.Advise(c.Context(), pred.StudentID, pred.RiskLevel, factors)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to generate advice",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate advice",
		Data:    fiber.Map{"student_id": pred.StudentID, "advice": advice},
	})
}

func (h *PredictionHandler) predictionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ml.ErrNotTrained):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "Model not trained. Train a model before predicting.",
		}, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "student not found",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "prediction failed",
		}, err)
	}
}
