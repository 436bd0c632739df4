package login

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User es la cuenta del paciente. Password guarda el hash bcrypt.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Password  string       `json:"-"`
	FullName  string       `json:"fullName"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	LastLogin sql.NullTime `json:"-"`
}

// UserStore abstrae el acceso a usuarios; las consultas (nil, nil) indican
// "no encontrado" sin error.
type UserStore interface {
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	Create(u *User) error
	UpdateLastLogin(id string) error
}

type Handler struct {
	users UserStore
}

func NewHandler(users UserStore) *Handler { return &Handler{users: users} }

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.register)
	r.POST("/api/auth/login", h.login)
	r.GET("/api/auth/me", h.me)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos inválidos"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Password = strings.TrimSpace(req.Password)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, contraseña y nombre son requeridos"})
		return
	}

	existing, err := h.users.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al registrar usuario"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El email ya está registrado"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al registrar usuario"})
		return
	}
	user := &User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     "patient",
	}
	if err := h.users.Create(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al registrar usuario"})
		return
	}

	token, err := GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al registrar usuario"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": publicUser(user), "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos inválidos"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al iniciar sesión"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email o contraseña incorrectos"})
		return
	}
	if err := h.users.UpdateLastLogin(user.ID); err != nil {
		// No bloquea el inicio de sesión.
		log.Printf("[LOGIN] error actualizando last_login de %s: %v", user.ID, err)
	}

	token, err := GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al iniciar sesión"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": publicUser(user), "token": token})
}

func (h *Handler) me(c *gin.Context) {
	userID, ok := UserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token de autenticación requerido"})
		return
	}
	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener usuario"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, publicUser(user))
}

func publicUser(u *User) gin.H {
	return gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"fullName": u.FullName,
		"role":     u.Role,
	}
}
