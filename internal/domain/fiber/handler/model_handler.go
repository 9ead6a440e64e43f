package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"github.com/mfauzirh/dropout-predictor/internal/usecase"
	"github.com/mfauzirh/dropout-predictor/internal/util"
	"github.com/tidwall/gjson"
)

type ModelHandler struct {
	uc *usecase.PredictionUsecase
}

func NewModelHandler(uc *usecase.PredictionUsecase) *ModelHandler {
	return &ModelHandler{uc: uc}
}

func (h *ModelHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/models/train", h.Train)
	app.Get("/models/info", h.Info)
}

// Train accepts {"training_data": <csv string | array of objects>,
// "model_type": ..., "save_model": ...} and runs a full training pipeline.
func (h *ModelHandler) Train(c *fiber.Ctx) error {
	body := c.Body()
	td := gjson.GetBytes(body, "training_data")
	if !td.Exists() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "training_data is required",
		}, nil)
	}

	var ds *ml.Dataset
	var err error
	switch {
	case td.IsArray():
		ds, err = ml.DatasetFromJSON([]byte(td.Raw))
	case td.Type == gjson.String:
		ds, err = ml.DatasetFromCSV(td.String())
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "training_data must be a CSV string or an array of objects",
		}, nil)
	}
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cannot parse training_data",
		}, err)
	}

	kind := gjson.GetBytes(body, "model_type").String()
	save := true
	if s := gjson.GetBytes(body, "save_model"); s.Exists() {
		save = s.Bool()
	}

	result, err := h.uc.Train(ds, kind, save)
	if err != nil {
		var cfgErr *ml.ConfigError
		var trainErr *ml.TrainingError
		switch {
		case errors.As(err, &cfgErr), errors.As(err, &trainErr):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: err.Error(),
			}, err)
		default:
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "model training failed",
			}, err)
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: fmt.Sprintf("Model trained successfully. Accuracy: %.4f", result.Metrics.Accuracy),
		Data:    result,
	})
}

func (h *ModelHandler) Info(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get model info",
		Data:    h.uc.ModelInfo(),
	})
}
