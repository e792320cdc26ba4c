package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/constants"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
)

// Определяем кастомный тип для ключа контекста, чтобы избежать коллизий.
type contextKey string

const sessionKeyCtx = contextKey("sessionKey")

type AuthMiddleware struct {
	authenticateUC usecases_port.AuthenticateUseCasePort
	sessionTTL     time.Duration
}

func NewAuthMiddleware(authenticateUC usecases_port.AuthenticateUseCasePort, sessionTTL time.Duration) *AuthMiddleware {
	return &AuthMiddleware{authenticateUC: authenticateUC, sessionTTL: sessionTTL}
}

// bearerToken возвращает токен и признак того, что заголовок вообще был передан
func bearerToken(r *http.Request) (string, bool, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false, true
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || strings.TrimSpace(token) == "" {
		return "", true, false
	}
	return strings.TrimSpace(token), true, true
}

func (am *AuthMiddleware) principal(r *http.Request) (*domain.Principal, bool, error) {
	token, present, wellFormed := bearerToken(r)
	if !present {
		return nil, false, nil
	}
	if !wellFormed {
		return nil, true, domain.ErrTokenInvalid
	}
	p, err := am.authenticateUC.Execute(r.Context(), token)
	return p, true, err
}

// Authenticate - middleware для обязательной проверки JWT
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context())

		p, present, err := am.principal(r)
		if !present {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if err != nil {
			respondWithError(w, logger, err, "Failed to authenticate request")
			return
		}

		ctx := contextkeys.ContextWithPrincipal(r.Context(), *p)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": p.UserID.String()}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth пропускает анонимные запросы, но отклоняет неверный токен
func (am *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, present, err := am.principal(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}
		logger := contextkeys.LoggerFromContext(r.Context())
		if err != nil {
			respondWithError(w, logger, err, "Failed to authenticate request")
			return
		}

		ctx := contextkeys.ContextWithPrincipal(r.Context(), *p)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": p.UserID.String()}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session определяет ключ списка недавно просмотренных.
// Для пользователя это его id, для анонима - cookie campus_stay_session.
func (am *AuthMiddleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := contextkeys.PrincipalFromContext(r.Context()); ok {
			ctx := context.WithValue(r.Context(), sessionKeyCtx, "user:"+p.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		sessionID := ""
		if c, err := r.Cookie(constants.SessionCookieName); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sessionID = id.String()
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     constants.SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(am.sessionTTL.Seconds()),
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKeyCtx, "anon:"+sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(sessionKeyCtx).(string)
	return key
}

// requirePrincipal достает пользователя, которого положил Authenticate
func requirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := contextkeys.PrincipalFromContext(r.Context())
	if !ok {
		contextkeys.LoggerFromContext(r.Context()).Error("Principal in context is missing", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}

func optionalPrincipal(r *http.Request) *domain.Principal {
	if p, ok := contextkeys.PrincipalFromContext(r.Context()); ok {
		return &p
	}
	return nil
}
