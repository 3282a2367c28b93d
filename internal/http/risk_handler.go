package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"credit-risk/internal/domain"
	"credit-risk/internal/model"
	"credit-risk/internal/service"
)

// RiskHandler mantiene dependencias para los endpoints de evaluacion.
type RiskHandler struct {
	logger    *zap.Logger
	inference *service.InferenceService
	modelInfo model.Info
	form      FormSchema
}

// NewRiskHandler crea una instancia de RiskHandler con dependencias necesarias.
func NewRiskHandler(logger *zap.Logger, inference *service.InferenceService, modelInfo model.Info) *RiskHandler {
	return &RiskHandler{
		logger:    logger,
		inference: inference,
		modelInfo: modelInfo,
		form:      NewFormSchema(),
	}
}

type assessRequest struct {
	Age             int    `json:"age" binding:"required,min=18,max=100"`
	Sex             string `json:"sex"`
	Job             string `json:"job"`
	Housing         string `json:"housing"`
	SavingAccounts  string `json:"saving_accounts"`
	CheckingAccount string `json:"checking_account"`
	CreditAmount    *int   `json:"credit_amount" binding:"required,min=0,max=100000"`
	Duration        int    `json:"duration" binding:"required,min=1,max=60"`
	Purpose         string `json:"purpose"`
}

func (r assessRequest) toQuery() domain.RiskQuery {
	return domain.RiskQuery{
		Age:             r.Age,
		Sex:             r.Sex,
		Job:             r.Job,
		Housing:         r.Housing,
		SavingAccounts:  r.SavingAccounts,
		CheckingAccount: r.CheckingAccount,
		CreditAmount:    *r.CreditAmount,
		Duration:        r.Duration,
		Purpose:         r.Purpose,
	}
}

type assessResponse struct {
	AssessmentID string `json:"assessment_id"`
	Verdict      string `json:"verdict"`
	RiskClass    int    `json:"risk_class"`
	VerdictView
	Model model.Info `json:"model"`
}

// Assess maneja POST /risk/assess.
func (h *RiskHandler) Assess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assess request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	assessmentID := uuid.NewString()
	verdict, err := h.inference.Predict(c.Request.Context(), req.toQuery())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			h.logger.Warn("invalid category", zap.String("assessment_id", assessmentID), zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnexpectedModelOutput),
			errors.Is(err, service.ErrInferenceFailed):
			h.logger.Error("risk assessment failed", zap.String("assessment_id", assessmentID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":         "risk assessment failed",
				"reason":        reasonFor(err),
				"assessment_id": assessmentID,
			})
		default:
			h.logger.Error("risk assessment failed", zap.String("assessment_id", assessmentID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assess risk"})
		}
		return
	}

	h.logger.Info("risk assessed",
		zap.String("assessment_id", assessmentID),
		zap.String("verdict", verdict.String()),
	)
	c.JSON(http.StatusOK, assessResponse{
		AssessmentID: assessmentID,
		Verdict:      verdict.String(),
		RiskClass:    int(verdict),
		VerdictView:  ViewForVerdict(verdict),
		Model:        h.modelInfo,
	})
}

func reasonFor(err error) string {
	if errors.Is(err, service.ErrUnexpectedModelOutput) {
		return service.ErrUnexpectedModelOutput.Error()
	}
	return service.ErrInferenceFailed.Error()
}

// Form maneja GET /risk/form.
func (h *RiskHandler) Form(c *gin.Context) {
	c.JSON(http.StatusOK, h.form)
}

// Health maneja GET /healthz.
func (h *RiskHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.modelInfo})
}
