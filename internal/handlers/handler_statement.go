package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finvault/fin_statements_app/internal/core/domain"
	portssvc "github.com/finvault/fin_statements_app/internal/core/ports/services"
	"github.com/finvault/fin_statements_app/internal/dto"
	"github.com/finvault/fin_statements_app/internal/middleware"
)

// statementHandler handles HTTP requests for ledger operations and queries.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(ss portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{
		statementService: ss,
	}
}

// registerStatementRoutes registers all statement-related routes.
// Each route binds its operation type explicitly; the type never comes from
// the request body or from parsing the URL.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	statements := rg.Group("/statements")
	{
		statements.POST("/deposit", h.createDeposit)
		statements.POST("/withdraw", h.createWithdraw)
		statements.POST("/transfers/:receiverID", h.createTransfer)
		statements.GET("/balance", h.getBalance)
		statements.GET("/:statementID", h.getStatementOperation)
	}
}

// createDeposit godoc
// @Summary Deposit money
// @Description Records a deposit against the authenticated user's account
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateStatementRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /statements/deposit [post]
func (h *statementHandler) createDeposit(c *gin.Context) {
	h.createStatement(c, domain.Deposit, nil)
}

// createWithdraw godoc
// @Summary Withdraw money
// @Description Records a withdrawal against the authenticated user's account
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   operation body dto.CreateStatementRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /statements/withdraw [post]
func (h *statementHandler) createWithdraw(c *gin.Context) {
	h.createStatement(c, domain.Withdraw, nil)
}

// createTransfer godoc
// @Summary Transfer money to another user
// @Description Atomically records a debit on the sender and a credit on the receiver
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   receiverID path string true "Receiver user ID"
// @Param   operation body dto.CreateStatementRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input, insufficient funds or self transfer"
// @Failure 404 {object} map[string]string "Sender or receiver not found"
// @Security BearerAuth
// @Router /statements/transfers/{receiverID} [post]
func (h *statementHandler) createTransfer(c *gin.Context) {
	receiverID := c.Param("receiverID")
	h.createStatement(c, domain.Transfer, &receiverID)
}

func (h *statementHandler) createStatement(c *gin.Context, opType domain.OperationType, receiverID *string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Amounts are validated at the transport boundary via the decimalgtzero
	// binding rule; the engine itself only re-checks sufficiency.
	var req dto.CreateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind statement request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Type = opType
	req.ReceiverID = receiverID

	created, err := h.statementService.CreateStatement(c.Request.Context(), actorUserID, req)
	if err != nil {
		respondStatementError(c, logger, err)
		return
	}

	logger.Info("Statement created",
		slog.String("statement_id", created.StatementID),
		slog.String("type", string(created.Type)),
	)
	c.JSON(http.StatusCreated, dto.ToStatementResponse(created))
}

// getBalance godoc
// @Summary Get balance and history
// @Description Returns the authenticated user's balance and full statement history
// @Tags statements
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /statements/balance [get]
func (h *statementHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, statements, err := h.statementService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondStatementError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance, statements))
}

// getStatementOperation godoc
// @Summary Get a single statement
// @Description Returns one statement belonging to the authenticated user
// @Tags statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "User or statement not found"
// @Security BearerAuth
// @Router /statements/{statementID} [get]
func (h *statementHandler) getStatementOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	statementID := c.Param("statementID")
	st, err := h.statementService.GetStatementOperation(c.Request.Context(), userID, statementID)
	if err != nil {
		respondStatementError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(st))
}

// respondStatementError maps each domain outcome to its own status code so
// clients never have to inspect error text.
func respondStatementError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrStatementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, domain.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to the same user"})
	default:
		logger.Error("Statement operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
