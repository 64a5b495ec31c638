package routes

import (
	"github.com/jaychung003/food-tracker/controllers"
	"github.com/jaychung003/food-tracker/middlewares"
	"github.com/jaychung003/food-tracker/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	entrySvc := services.NewEntryService(db)
	ingredientSvc := services.NewIngredientService(db)
	dishSvc := services.NewSavedDishService(db)
	detector := services.NewDetectorService()
	correlationSvc := services.NewCorrelationService(db)
	patternSvc := services.NewPatternService(db)
	exportSvc := services.NewExportService(db)
	sampleSvc := services.NewSampleDataService(db)
	importSvc := services.NewCSVImportService(db)

	entries := controllers.NewEntryController(entrySvc)
	food := controllers.NewFoodController(detector, ingredientSvc)
	dishes := controllers.NewDishController(dishSvc)
	analysis := controllers.NewAnalysisController(correlationSvc, patternSvc)
	export := controllers.NewExportController(exportSvc)
	dev := controllers.NewDevController(sampleSvc, importSvc)

	api := r.Group("/api")
	api.Use(middlewares.UserMiddleware(db))
	{
		api.GET("/food-entries", entries.ListFoodEntries)
		api.GET("/food-entries/range", entries.ListFoodEntriesByRange)
		api.POST("/food-entries", entries.CreateFoodEntry)
		api.DELETE("/food-entries/:id", entries.DeleteFoodEntry)

		api.GET("/symptom-entries", entries.ListSymptomEntries)
		api.GET("/symptom-entries/range", entries.ListSymptomEntriesByRange)
		api.POST("/symptom-entries", entries.CreateSymptomEntry)
		api.DELETE("/symptom-entries/:id", entries.DeleteSymptomEntry)

		api.POST("/food/analyze", food.AnalyzeDish)
		api.POST("/food/analyze-triggers", food.AnalyzeTriggers)
		api.GET("/ingredients", food.ListIngredients)
		api.GET("/ingredients/search", food.SearchIngredients)

		api.GET("/saved-dishes", dishes.List)
		api.POST("/saved-dishes", dishes.Create)
		api.PUT("/saved-dishes/:id/use", dishes.MarkUsed)
		api.DELETE("/saved-dishes/:id", dishes.Delete)

		api.POST("/analysis/correlations", analysis.RunCorrelations)
		api.GET("/analysis/coverage", analysis.GetCoverage)
		api.GET("/analysis/patterns", analysis.GetPatterns)
		api.GET("/analysis/recommendations", analysis.GetRecommendations)

		api.GET("/export", export.Export)

		api.POST("/dev/sample-data", dev.GenerateSampleData)
		api.POST("/dev/import-csv", dev.ImportCSV)
	}

	return r
}
