package http

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"exam-clearance/internal/auth"
	"exam-clearance/internal/domain"
	"exam-clearance/internal/service"
)

const slipFilename = "clearance-slip.pdf"

// SlipRenderer draws the clearance slip for a student's exam rows.
type SlipRenderer interface {
	Render(w io.Writer, rows []domain.ExamEntry) error
}

// Options carries the session cookie settings and the optional web client.
type Options struct {
	CookieName     string
	CookieSecure   bool
	CookieSameSite http.SameSite
	TokenTTL       time.Duration

	// Client is served for every path outside /api when set.
	Client fs.FS
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	students service.StudentService
	tokens   *auth.Issuer
	slips    SlipRenderer
	logger   *logrus.Logger
	metrics  *metrics
	opts     Options
}

func NewHandler(users service.UserService, students service.StudentService, tokens *auth.Issuer, slips SlipRenderer, logger *logrus.Logger, opts Options) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if opts.CookieName == "" {
		opts.CookieName = "token"
	}
	if opts.CookieSameSite == 0 {
		opts.CookieSameSite = http.SameSiteLaxMode
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 2 * time.Hour
	}
	return &Handler{
		users:    users,
		students: students,
		tokens:   tokens,
		slips:    slips,
		logger:   logger,
		metrics:  newMetrics(),
		opts:     opts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.observe())

	router.GET("/metrics", gin.WrapH(h.metrics.handler()))

	api := router.Group("/api")
	{
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authed := api.Group("", h.requireToken())
		authed.GET("/me", h.me)
		authed.GET("/permission-slip", h.permissionSlip)
		authed.GET("/admin/students", h.requireRole(domain.RoleAdmin), h.adminStudents)
	}

	if h.opts.Client != nil {
		router.NoRoute(serveClient(h.opts.Client))
	}
}

type loginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.tokens.Issue(auth.Identity{
		UserID:    user.ID,
		StudentID: user.StudentID,
		Role:      user.Role,
	}, h.opts.TokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetSameSite(h.opts.CookieSameSite)
	c.SetCookie(h.opts.CookieName, token, int(h.opts.TokenTTL/time.Second), "/", "", h.opts.CookieSecure, true)
	c.JSON(http.StatusOK, loginResponse{Token: token, Role: user.Role})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(h.opts.CookieSameSite)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}

func (h *Handler) me(c *gin.Context) {
	id := identityFrom(c)
	rows, err := h.students.Schedule(c.Request.Context(), id.StudentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]ExamEntryResponse, len(rows))
	for i := range rows {
		resp[i] = examEntryToResponse(rows[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) permissionSlip(c *gin.Context) {
	id := identityFrom(c)
	rows, err := h.students.SlipRows(c.Request.Context(), id.StudentID)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.slips.Render(&buf, rows); err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.slips.Inc()

	c.Header("Content-Disposition", `attachment; filename="`+slipFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handler) adminStudents(c *gin.Context) {
	students, err := h.students.ListStudents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]StudentResponse, len(students))
	for i := range students {
		resp[i] = studentToResponse(students[i])
	}
	c.JSON(http.StatusOK, resp)
}

type ExamEntryResponse struct {
	FullName   string `json:"full_name"`
	RollNo     string `json:"roll_no"`
	Department string `json:"department"`
	Semester   string `json:"semester"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	ExamDate   string `json:"exam_date"`
	ExamTime   string `json:"exam_time"`
}

type StudentResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	FullName   string `json:"full_name"`
	RollNo     string `json:"roll_no"`
	Department string `json:"department"`
	Semester   string `json:"semester"`
}

func examEntryToResponse(e domain.ExamEntry) ExamEntryResponse {
	return ExamEntryResponse{
		FullName:   e.FullName,
		RollNo:     e.RollNo,
		Department: e.Department,
		Semester:   e.Semester,
		Code:       e.Code,
		Title:      e.Title,
		ExamDate:   e.ExamDate,
		ExamTime:   e.ExamTime,
	}
}

func studentToResponse(s domain.StudentProfile) StudentResponse {
	return StudentResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		FullName:   s.FullName,
		RollNo:     s.RollNo,
		Department: s.Department,
		Semester:   s.Semester,
	}
}
