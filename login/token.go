package login

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Token compacto tipo JWT firmado con HMAC-SHA256. Suficiente para sesiones
// de la app sin arrastrar una librería completa de JWT.

const tokenTTL = 7 * 24 * time.Hour

type tokenPayload struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Exp    int64  `json:"exp"`
	Jti    string `json:"jti"`
}

func sessionSecret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "dev-insecure-secret"
	}
	return []byte(s)
}

// GenerateToken emite un token de sesión de 7 días para el usuario.
func GenerateToken(u *User) (string, error) {
	payloadBytes, err := json.Marshal(tokenPayload{
		UserID: u.ID,
		Email:  u.Email,
		Exp:    time.Now().Add(tokenTTL).Unix(),
		Jti:    generateJTI(),
	})
	if err != nil {
		return "", err
	}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(payloadBytes)
	mac := hmac.New(sha256.New, sessionSecret())
	mac.Write([]byte(header + "." + payload))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return header + "." + payload + "." + sig, nil
}

func parseToken(token string) (tokenPayload, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return tokenPayload{}, false
	}
	mac := hmac.New(sha256.New, sessionSecret())
	mac.Write([]byte(parts[0] + "." + parts[1]))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return tokenPayload{}, false
	}
	pb, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return tokenPayload{}, false
	}
	var tp tokenPayload
	if err := json.Unmarshal(pb, &tp); err != nil {
		return tokenPayload{}, false
	}
	if tp.Exp < time.Now().Unix() {
		return tokenPayload{}, false
	}
	return tp, true
}

func generateJTI() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102150405")
	}
	return hex.EncodeToString(b)
}

// UserIDFromToken valida firma y expiración y devuelve el id del usuario.
func UserIDFromToken(token string) (string, bool) {
	tp, ok := parseToken(token)
	if !ok {
		return "", false
	}
	return tp.UserID, true
}

// UserIDFromRequest extrae el token Bearer de la petición. Pensado también
// para rutas de autenticación opcional: ok=false simplemente significa
// petición anónima.
func UserIDFromRequest(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if token == "" {
		return "", false
	}
	return UserIDFromToken(token)
}
