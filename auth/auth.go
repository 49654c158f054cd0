package auth

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/mongo/mongodriver"
	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-library/errors"
	"github.com/supakorn-kn/go-library/objects"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SessionName = "library_session"

	userIDSessionKey  = "user_id"
	userContextKey    = "user"
	sessionCollection = "sessions"
)

type UserFinder interface {
	GetByID(ctx context.Context, userID string) (objects.User, error)
}

func storeOptions(maxAge int) sessions.Options {

	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func NewCookieStore(secret string, maxAge int) sessions.Store {

	store := cookie.NewStore([]byte(secret))
	store.Options(storeOptions(maxAge))

	return store
}

// NewMongoStore keeps session data in the "sessions" collection of db, expiring
// documents through a TTL index.
func NewMongoStore(db *mongo.Database, secret string, maxAge int) sessions.Store {

	store := mongodriver.NewStore(db.Collection(sessionCollection), maxAge, true, []byte(secret))
	store.Options(storeOptions(maxAge))

	return store
}

func Sessions(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(SessionName, store)
}

// LoadUser puts the signed in user, if any, on the request context.
func LoadUser(users UserFinder) gin.HandlerFunc {

	return func(ctx *gin.Context) {

		session := sessions.Default(ctx)

		userID, ok := session.Get(userIDSessionKey).(string)
		if !ok || userID == "" {
			ctx.Next()
			return
		}

		user, err := users.GetByID(ctx.Request.Context(), userID)
		if err != nil {

			if errors.ObjectIDNotFoundError.IsEqual(err) {
				session.Delete(userIDSessionKey)
				if err := session.Save(); err != nil {
					ctx.Error(err)
					ctx.AbortWithStatus(http.StatusInternalServerError)
					return
				}

				ctx.Next()
				return
			}

			ctx.Error(err)
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (objects.User, bool) {

	value, ok := ctx.Get(userContextKey)
	if !ok {
		return objects.User{}, false
	}

	user, ok := value.(objects.User)
	return user, ok
}

func Login(ctx *gin.Context, user objects.User) error {

	session := sessions.Default(ctx)
	session.Set(userIDSessionKey, user.UserID)
	ctx.Set(userContextKey, user)

	return session.Save()
}

func Logout(ctx *gin.Context) error {

	session := sessions.Default(ctx)
	session.Delete(userIDSessionKey)

	return session.Save()
}

// LoginRequired aborts anonymous requests with LoginRequiredError. The surface that
// registered the route decides how to answer it.
func LoginRequired() gin.HandlerFunc {

	return func(ctx *gin.Context) {

		if _, ok := CurrentUser(ctx); !ok {
			deny(ctx, errors.LoginRequiredError.New())
			return
		}

		ctx.Next()
	}
}

// PermissionRequired aborts anonymous requests with LoginRequiredError and users
// lacking permission with PermissionDeniedError.
func PermissionRequired(permission string) gin.HandlerFunc {

	return func(ctx *gin.Context) {

		user, ok := CurrentUser(ctx)
		if !ok {
			deny(ctx, errors.LoginRequiredError.New())
			return
		}

		if !user.HasPermission(permission) {
			deny(ctx, errors.PermissionDeniedError.New(permission))
			return
		}

		ctx.Next()
	}
}

func deny(ctx *gin.Context, err errors.BaseError) {

	ctx.Status(errors.StatusCode(err))
	ctx.Error(err)
	ctx.Abort()
}
