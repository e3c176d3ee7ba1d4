// Package stubapi is a self-contained stand-in for the platform backend,
// used in development and in client tests. It serves the same endpoints and
// wire shapes the real API does, backed by an in-memory SQLite database
// seeded with a small referral network and a handful of pending requests.
package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/netvest/console/internal/config"
	"github.com/netvest/console/internal/models"
	"github.com/netvest/console/internal/session"
)

// Server holds the fixture database and configuration.
type Server struct {
	db  *gorm.DB
	cfg config.StubConfig
}

// New opens the fixture database, migrates the schema and seeds it.
func New(cfg config.StubConfig) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Account{}, &TransactionRecord{}); err != nil {
		return nil, err
	}

	s := &Server{db: db, cfg: cfg}
	if err := s.seed(); err != nil {
		return nil, err
	}

	return s, nil
}

// Router builds the gin router with all stub endpoints registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.POST("/auth/login", s.login)

	admin := router.Group("/admin")
	admin.Use(s.authMiddleware())
	{
		admin.GET("/team-members", s.getTeamMembers)
		admin.GET("/deposits", s.listTransactions(models.KindDeposit))
		admin.GET("/withdrawals", s.listTransactions(models.KindWithdrawal))
		admin.PATCH("/deposits/:id", s.updateStatus(models.KindDeposit))
		admin.PATCH("/withdrawals/:id", s.updateStatus(models.KindWithdrawal))
	}

	return router
}

// login checks credentials against the fixture accounts and issues an HS256
// bearer token with the same claims the real platform uses.
func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	var account Account
	if err := s.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.JWTExpiration) * time.Hour)
	claims := session.Claims{
		UserID:  account.ID,
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     signed,
		"tokenType": "Bearer",
		"expiresIn": expiresAt.Unix() - time.Now().Unix(),
	})
}

// authMiddleware verifies the bearer token and requires admin privileges,
// since every stubbed endpoint lives under /admin.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims := &session.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// extractToken gets the token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearer := c.GetHeader("Authorization")
	parts := strings.Split(bearer, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// getTeamMembers returns the viewer's referral network snapshot.
func (s *Server) getTeamMembers(c *gin.Context) {
	userID := c.GetString("user_id")

	var viewer Account
	if err := s.db.First(&viewer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return
	}

	var accounts []Account
	if err := s.db.Where("level > 0").Order("created_at asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load team members"})
		return
	}

	members := make([]models.Member, 0, len(accounts))
	for _, a := range accounts {
		members = append(members, a.toMember())
	}

	c.JSON(http.StatusOK, models.NetworkSnapshot{
		TeamMembers:      members,
		RootReferralCode: viewer.ReferralCode,
		TotalMembers:     len(members),
	})
}

// listTransactions returns all records of one kind, newest first.
func (s *Server) listTransactions(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []TransactionRecord
		err := s.db.Preload("Account").
			Where("kind = ?", string(kind)).
			Order("created_at desc").
			Find(&records).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
			return
		}

		transactions := make([]models.Transaction, 0, len(records))
		for _, r := range records {
			transactions = append(transactions, r.toTransaction())
		}

		c.JSON(http.StatusOK, transactions)
	}
}

// updateStatus applies the one transition the platform allows: pending to
// approved or rejected.
func (s *Server) updateStatus(kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status models.Status `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}

		if !req.Status.IsTerminal() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be approved or rejected"})
			return
		}

		var record TransactionRecord
		err := s.db.Preload("Account").
			Where("id = ? AND kind = ?", c.Param("id"), string(kind)).
			First(&record).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}

		if models.Status(record.Status) != models.StatusPending {
			c.JSON(http.StatusConflict, gin.H{"error": "transaction is not pending"})
			return
		}

		if err := s.db.Model(&record).Update("status", string(req.Status)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update transaction"})
			return
		}
		record.Status = string(req.Status)

		c.JSON(http.StatusOK, record.toTransaction())
	}
}
