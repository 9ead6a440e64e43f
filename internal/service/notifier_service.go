package service

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mfauzirh/dropout-predictor/internal/config"
	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"github.com/tidwall/gjson"
)

type NotifierServiceInterface interface {
	NotifyHighRisk(studentID string, result *ml.PredictionResult)
}

// NotifierService posts high-risk predictions to the counseling webhook so a
// counselor can follow up. Delivery is best effort: failures are logged, a
// prediction never fails because the webhook is down.
type NotifierService struct {
	client *resty.Client
	url    string
}

func NewNotifierService() *NotifierService {
	return &NotifierService{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    config.LoadNotifierConfig().WebhookURL,
	}
}

func (s *NotifierService) NotifyHighRisk(studentID string, result *ml.PredictionResult) {
	if s.url == "" {
		return
	}
	payload := map[string]any{
		"student_id":           studentID,
		"risk_score":           result.RiskScore,
		"risk_level":           result.RiskLevel,
		"confidence":           result.Confidence,
		"contributing_factors": result.ContributingFactors,
	}
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		log.Printf("Risk webhook delivery failed for student %s: %v", studentID, err)
		return
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "message").String()
		log.Printf("Risk webhook rejected alert for student %s: %d %s", studentID, resp.StatusCode(), msg)
	}
}
