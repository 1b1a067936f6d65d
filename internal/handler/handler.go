package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/pkg/auth"
	md "github.com/aolivares/school-library-service/pkg/middleware"
	"github.com/aolivares/school-library-service/pkg/validate"
)

type Handler struct {
	loanSvc        LoanService
	fineSvc        FineService
	reservationSvc ReservationService
	catalogSvc     CatalogService
	authSvc        AuthService
	log            *zap.Logger
}

func New(svc Services, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc:        svc,
		fineSvc:        svc,
		reservationSvc: svc,
		catalogSvc:     svc,
		authSvc:        svc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/authorize", h.Authorize)

	authed := api.Group("", md.JwtAuthentication)

	// Every protected route names its allowed roles explicitly; ADMIN is not
	// an implicit superset of USER.
	general := authed.Group("", md.RequireRoles(auth.RoleAdmin, auth.RoleUser))
	admin := authed.Group("", md.RequireRoles(auth.RoleAdmin))

	general.GET("/students", h.ListStudents)
	general.GET("/students/:studentUid", h.GetStudent)
	general.POST("/students", h.CreateStudent)
	general.PUT("/students/:studentUid", h.UpdateStudent)
	admin.DELETE("/students/:studentUid", h.DeleteStudent)

	general.GET("/categories", h.ListCategories)
	general.GET("/categories/:categoryUid", h.GetCategory)
	general.POST("/categories", h.CreateCategory)
	general.PUT("/categories/:categoryUid", h.UpdateCategory)
	admin.DELETE("/categories/:categoryUid", h.DeleteCategory)

	general.GET("/books", h.ListBooks)
	general.GET("/books/:bookUid", h.GetBook)
	general.POST("/books", h.CreateBook)
	general.PUT("/books/:bookUid", h.UpdateBook)
	admin.DELETE("/books/:bookUid", h.DeleteBook)
	admin.PATCH("/books/:bookUid/available", h.AdjustAvailable)

	general.GET("/loans", h.ListLoans)
	general.GET("/loans/:loanUid", h.GetLoan)
	general.POST("/loans", h.CreateLoan)
	general.POST("/loans/:loanUid/return", h.RecordReturn)

	general.GET("/returns", h.ListReturns)
	general.GET("/returns/:returnUid", h.GetReturn)

	general.GET("/fines", h.ListFines)
	general.GET("/fines/:fineUid", h.GetFine)
	general.POST("/fines", h.CreateFine)
	general.POST("/fines/:fineUid/pay", h.PayFine)

	general.GET("/reservations", h.ListReservations)
	general.GET("/reservations/:reservationUid", h.GetReservation)
	general.POST("/reservations", h.CreateReservation)
	general.POST("/reservations/:reservationUid/cancel", h.CancelReservation)
	general.POST("/reservations/:reservationUid/fulfill", h.FulfillReservation)

	general.POST("/password", h.ChangePassword)

	admin.POST("/users", h.Register)
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:userUid", h.UpdateUser)
	admin.DELETE("/users/:userUid", h.DeleteUser)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// toHTTPError maps the core's error kinds onto statuses; anything
// unrecognized is a 500.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidRange), errors.Is(err, errs.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrOutOfStock),
		errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pageSize(c echo.Context) (page, size int, err error) {
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil || page < 0 {
			return 0, 0, errors.New("page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil || size < 0 {
			return 0, 0, errors.New("size is invalid")
		}
	}
	return page, size, nil
}
