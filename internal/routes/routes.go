package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bookkeeping-control-backend/internal/config"
	handler "bookkeeping-control-backend/internal/handlers"
	"bookkeeping-control-backend/internal/repository"
	"bookkeeping-control-backend/internal/services/ledger"
	"bookkeeping-control-backend/internal/services/payroll"
	"bookkeeping-control-backend/internal/services/reconciliation"
	"bookkeeping-control-backend/internal/services/vendors"
	"bookkeeping-control-backend/internal/services/workflow"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	log := config.GetLogger()

	stagingRepo := repository.NewStagedRecordRepository(db)
	transactionRepo := repository.NewLedgerTransactionRepository(db)
	vendorModelRepo := repository.NewVendorModelRepository(db)
	reportRepo := repository.NewReconciliationReportRepository(db)
	ruleRepo := repository.NewApprovalRuleRepository(db)
	instanceRepo := repository.NewApprovalInstanceRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	vendorService := vendors.NewService(vendorModelRepo, log)
	reconEngine := reconciliation.NewEngine(stagingRepo, transactionRepo, reportRepo, vendorService, log)
	workflowEngine := workflow.NewEngine(ruleRepo, instanceRepo, log)
	ledgerService := ledger.NewService(journalRepo, accountRepo, log)
	payrollService := payroll.NewService(payroll.DefaultRates(), workflowEngine, ledgerService, log)

	ingestionHandler := handler.NewIngestionHandler(stagingRepo, transactionRepo)
	vendorHandler := handler.NewVendorHandler(vendorService)
	reconHandler := handler.NewReconciliationHandler(reconEngine)
	workflowHandler := handler.NewWorkflowHandler(workflowEngine)
	journalHandler := handler.NewJournalHandler(ledgerService, reconEngine)
	payrollHandler := handler.NewPayrollHandler(payrollService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Ingestion boundary
	api.POST("/staging", ingestionHandler.UploadStaging)
	api.DELETE("/staging", ingestionHandler.ClearStaging)
	api.POST("/transactions", ingestionHandler.UploadTransactions)

	// Vendor directory
	v := api.Group("/vendors")
	v.PUT("", vendorHandler.Retrain)
	v.POST("/normalize", vendorHandler.Normalize)

	// Reconciliation
	recon := api.Group("/reconciliation")
	recon.POST("/run", reconHandler.Run)
	recon.GET("/report", reconHandler.GetReport)

	// Approval workflow
	wf := api.Group("/workflow")
	wf.POST("/rules", workflowHandler.CreateRule)
	wf.GET("/rules", workflowHandler.ListRules)
	wf.GET("/instances", workflowHandler.ListInstances)
	wf.POST("/instances/:id/approvals", workflowHandler.AddApproval)
	wf.POST("/check", workflowHandler.CheckPosting)

	// Journal & reports
	j := api.Group("/journal")
	j.POST("/entries", journalHandler.PostEntry)
	j.GET("/entries", journalHandler.ListEntries)
	j.POST("/post-reconciliation", journalHandler.PostFromReconciliation)
	j.GET("/trial-balance", journalHandler.TrialBalance)
	j.GET("/balance-sheet", journalHandler.BalanceSheet)
	j.GET("/profit-and-loss", journalHandler.ProfitAndLoss)
	j.GET("/accounts", journalHandler.ChartOfAccounts)

	// Payroll
	api.POST("/payroll/run", payrollHandler.Run)
}
