package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"gghubblog/internal/config"
	handlers "gghubblog/internal/handler"
	"gghubblog/internal/service"
)

type Middleware func(http.Handler) http.Handler

// UserIDFromContext возвращает id аутентифицированного пользователя,
// 0 - если его нет.
func UserIDFromContext(ctx context.Context) int {
	userID, _ := ctx.Value("userID").(int)
	return userID
}

// extractToken достает токен из заголовка Authorization, префикс "Bearer "
// не обязателен.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	return strings.TrimPrefix(authHeader, "Bearer ")
}

// RequireAuth пропускает запрос дальше только с валидным токеном и кладет
// id пользователя в контекст. Отсутствие, просрочка и невалидность токена
// дают разные сообщения, но один статус 401.
func RequireAuth(authService service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				handlers.WriteError(w, "Токен отсутствует", http.StatusUnauthorized)
				return
			}

			userID, err := authService.VerifyToken(tokenString)
			if err != nil {
				switch err {
				case service.ErrTokenExpired:
					handlers.WriteError(w, "Токен просрочен", http.StatusUnauthorized)
				default:
					handlers.WriteError(w, "Невалидный токен", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), "userID", userID)
			next(w, r.WithContext(ctx))
		}
	}
}

// OptionalAuth - вариант той же проверки для публичных маршрутов, где токен
// лишь меняет форму ответа: любая проблема с токеном оставляет запрос
// анонимным, ошибки не возвращаются.
func OptionalAuth(authService service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next(w, r)
				return
			}

			userID, err := authService.VerifyToken(tokenString)
			if err != nil {
				next(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), "userID", userID)
			next(w, r.WithContext(ctx))
		}
	}
}

func CORSMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.RequestURI, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
