package routes

import (
	"lifelog/src/domain"
	"lifelog/src/interface/handler"
	"lifelog/src/middleware"
	"lifelog/src/security"
	"lifelog/src/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Auth        *handler.AuthHandler
	Journal     *handler.JournalHandler
	Todo        *handler.TodoHandler
	Category    *handler.CategoryHandler
	Anniversary *handler.AnniversaryHandler
	Profile     *handler.ProfileHandler
	Calendar    *handler.CalendarHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Options carries the collaborators the middleware needs
type Options struct {
	JWTService  service.JWTService
	Limiter     security.AttemptLimiter
	CORSOrigins string
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, h Handlers, opts Options) {
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))

	// 認証が不要なパブリックルート
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", middleware.LoginGuard(opts.Limiter), h.Auth.Login)

	// 以降はすべてオーナー認証が必要
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(opts.JWTService))

	private.POST("/auth/logout", h.Auth.Logout)

	journals := private.Group("/journals")
	{
		journals.POST("", h.Journal.CreateJournal)            // POST /api/journals
		journals.GET("/:id", h.Journal.GetJournal)            // GET /api/journals/:id
		journals.PUT("/:id", h.Journal.UpdateJournal)         // PUT /api/journals/:id
		journals.PATCH("/:id/lock", h.Journal.LockJournal)    // PATCH /api/journals/:id/lock
		journals.PATCH("/:id/images", h.Journal.ChangeImages) // PATCH /api/journals/:id/images
		journals.PATCH("/:id/save", h.Journal.SaveJournal)    // PATCH /api/journals/:id/save
		journals.DELETE("/:id", h.Journal.DeleteJournal)      // DELETE /api/journals/:id
		registerSeek(journals, h.Journal.FindJournals)        // POST /api/journals/{daily,weekly,monthly}
	}

	todos := private.Group("/todos")
	{
		todos.POST("", h.Todo.CreateTodo)               // POST /api/todos
		todos.GET("/:id", h.Todo.GetTodo)               // GET /api/todos/:id
		todos.PUT("/:id", h.Todo.UpdateTodo)            // PUT /api/todos/:id
		todos.PATCH("/:id/status", h.Todo.ChangeStatus) // PATCH /api/todos/:id/status
		todos.POST("/:id/copy", h.Todo.CopyTodo)        // POST /api/todos/:id/copy
		todos.DELETE("/:id", h.Todo.DeleteTodo)         // DELETE /api/todos/:id
		registerSeek(todos, h.Todo.FindTodos)           // POST /api/todos/{daily,weekly,monthly}
	}

	categories := private.Group("/categories")
	{
		categories.POST("", h.Category.CreateCategory)             // POST /api/categories
		categories.GET("", h.Category.ListCategories)              // GET /api/categories
		categories.PUT("/order", h.Category.ReorderCategories)     // PUT /api/categories/order
		categories.GET("/:id", h.Category.GetCategory)             // GET /api/categories/:id
		categories.PUT("/:id", h.Category.UpdateCategory)          // PUT /api/categories/:id
		categories.PATCH("/:id/remove", h.Category.RemoveCategory) // PATCH /api/categories/:id/remove
	}

	anniversaries := private.Group("/anniversaries")
	{
		anniversaries.POST("", h.Anniversary.CreateAnniversary)       // POST /api/anniversaries
		anniversaries.GET("/:id", h.Anniversary.GetAnniversary)       // GET /api/anniversaries/:id
		anniversaries.PUT("/:id", h.Anniversary.UpdateAnniversary)    // PUT /api/anniversaries/:id
		anniversaries.DELETE("/:id", h.Anniversary.DeleteAnniversary) // DELETE /api/anniversaries/:id
		registerSeek(anniversaries, h.Anniversary.FindAnniversaries)  // POST /api/anniversaries/{daily,weekly,monthly}
	}

	profile := private.Group("/profile")
	{
		profile.GET("", h.Profile.GetProfile)                // GET /api/profile
		profile.PUT("", h.Profile.SaveProfile)               // PUT /api/profile
		profile.PATCH("/settings", h.Profile.ChangeSettings) // PATCH /api/profile/settings
		profile.PATCH("/password", h.Auth.ChangePassword)    // PATCH /api/profile/password
	}

	private.GET("/calendar", h.Calendar.GetMonth)          // GET /api/calendar?month=YYYY-MM
	private.GET("/calendar/days/:date", h.Calendar.GetDay) // GET /api/calendar/days/:date
	private.GET("/cursor", h.Calendar.GetCursor)           // GET /api/cursor
	private.POST("/cursor/month", h.Calendar.ShiftMonth)   // POST /api/cursor/month
	private.POST("/cursor/select", h.Calendar.Select)      // POST /api/cursor/select

	private.GET("/stats", h.Stats.GetStats) // GET /api/stats?strategy=MONTHLY
}

// registerSeek adds the daily, weekly and monthly lookups of a resource
func registerSeek(g *gin.RouterGroup, find func(domain.Scope) gin.HandlerFunc) {
	for _, scope := range domain.Scopes {
		g.POST("/"+string(scope), find(scope))
	}
}
