package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidUser  = errors.New("invalid user")
	errInvalidRealm = errors.New("invalid authentication realm")
	errInvalidToken = errors.New("invalid token")

	jwtSigningMethod = jwt.SigningMethodHS256
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		replyError(w, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(strings.ToLower(payload.User))
	user := s.conf.Auth.FindUser(name)
	if user == nil {
		logrus.Warn("invalid user")
		replyStatusCode(w, http.StatusUnprocessableEntity)
		return
	}
	if payload.Password != user.Password {
		logrus.Warn("invalid password")
		replyStatusCode(w, http.StatusUnauthorized)
		return
	}

	s.sendNewJWT(w, name)
}

func (s *Server) sendNewJWT(w http.ResponseWriter, user string) {
	token := jwt.NewWithClaims(jwtSigningMethod, jwt.MapClaims{
		"sub": user,
		"exp": time.Now().Add(time.Duration(s.conf.Auth.TokenTTL)).Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		logrus.Errorf("error signing jwt token: %v", err)
		tokenString = "null"
	} else {
		tokenString = fmt.Sprintf(`"%s"`, tokenString)
	}
	w.Header().Set(httpHeaderContentType, contentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	writeHTTP(w, `{"auth_token":%s}`, tokenString)
}

func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.checkAuthentication(r); err != nil {
			logrus.Warnf("invalid authentication: %v", err)
			replyStatusCode(w, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) checkAuthentication(r *http.Request) (string, error) {
	// fetch token from request
	const realm = "Bearer "
	authn := r.Header.Get(httpHeaderAuthorization)
	if !strings.HasPrefix(authn, realm) {
		return "", errInvalidRealm
	}
	tokenString := authn[len(realm):]

	// validate token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwtSigningMethod.Name}))
	if err != nil {
		return "", fmt.Errorf("error parsing jwt token: %w", err)
	}
	if !token.Valid {
		return "", errInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error getting subject from token: %w", err)
	}
	if s.conf.Auth.FindUser(sub) == nil {
		return "", errInvalidUser
	}
	return sub, nil
}
