package authkit

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/authkit/errors"
	"github.com/kbukum/authkit/logger"
	"github.com/kbukum/authkit/routes"
	"github.com/kbukum/authkit/store"
	"github.com/kbukum/authkit/token"
	"github.com/kbukum/authkit/util"
)

const tracerName = "github.com/kbukum/authkit"

// Stores bundles the data-access collaborators. Users is required; Tokens
// may be nil when access tokens are verified from the JWT alone, in which
// case issued tokens are stateless and cannot be revoked.
type Stores struct {
	Users  store.UserStore
	Tokens store.TokenStore
}

// Plugin is the authentication middleware. Construct it once with New and
// mount Middleware on the host router; all state is read-only after
// construction.
type Plugin struct {
	cfg       Config
	validator *token.Validator
	issuer    *token.Issuer
	log       *logger.Logger
	tracer    trace.Tracer
}

// New validates the configuration and builds the plugin. Configuration
// errors abort construction; there is no partially working plugin.
func New(cfg Config, stores Stores, log *logger.Logger) (*Plugin, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stores.Users == nil {
		return nil, apperrors.Configuration("a user store is required")
	}
	if !cfg.VerifyAccessTokenOnlyInJWT && stores.Tokens == nil {
		return nil, apperrors.Configuration("a token store is required unless verify_access_token_only_in_jwt is set")
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	validator := token.NewValidator(token.ValidatorConfig{
		Secret:          cfg.JWTSecret,
		VerifyOnlyInJWT: cfg.VerifyAccessTokenOnlyInJWT,
		Users:           stores.Users,
		Tokens:          stores.Tokens,
		UserValidation:  cfg.UserValidation,
		PublicRoutes:    cfg.PublicRoutes,
	}, log)

	plugin := &Plugin{
		cfg:       cfg,
		validator: validator,
		issuer:    token.NewIssuer(stores.Users, stores.Tokens, log),
		log:       log.WithComponent("auth"),
		tracer:    otel.Tracer(tracerName),
	}

	plugin.log.Debug("plugin configured", logger.Fields(
		"token_source", cfg.GetTokenFrom.From,
		"public_routes", len(cfg.PublicRoutes),
		"jwt_secret", util.MaskSecret(cfg.JWTSecret, 4),
		"verify_only_in_jwt", cfg.VerifyAccessTokenOnlyInJWT,
	))
	return plugin, nil
}

// Issuer exposes token minting, rotation and revocation bound to the
// plugin's stores.
func (p *Plugin) Issuer() *token.Issuer { return p.issuer }

// Config returns a copy of the effective configuration.
func (p *Plugin) Config() Config { return p.cfg }

// Middleware returns the Gin handler that authenticates every request.
//
// Public routes short-circuit before any extraction or database access.
// Protected routes must present a verifiable token; failures abort the
// request with the mapped HTTP status and a structured body.
func (p *Plugin) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		if p.cfg.Prefix != "" && !strings.HasPrefix(path, p.cfg.Prefix) {
			setAuth(c, &Auth{})
			c.Next()
			return
		}

		ctx, span := p.tracer.Start(c.Request.Context(), "authkit.authenticate",
			trace.WithAttributes(
				attribute.String("http.route", path),
				attribute.String("http.method", method),
			),
		)
		defer span.End()

		if routes.IsAllowed(path, method, p.cfg.PublicRoutes) {
			span.SetAttributes(attribute.Bool("auth.public", true))
			setAuth(c, &Auth{})
			c.Next()
			return
		}

		tokenValue, err := token.FromRequest(c.Request, p.cfg.GetTokenFrom, p.cfg.CookieSecret)
		if err != nil {
			p.abort(c, err)
			return
		}

		auth, err := p.validator.Check(ctx, tokenValue, path, method, func() {
			p.removeAuthCookie(c)
		})
		if err != nil {
			p.abort(c, err)
			return
		}
		if auth == nil {
			// No token on a protected route.
			p.log.Warn("unauthorized access attempt", logger.Fields(
				logger.FieldURL, path,
				logger.FieldMethod, method,
			))
			p.abort(c, apperrors.InvalidToken(""))
			return
		}

		span.SetAttributes(attribute.Bool("auth.connected", auth.IsConnected))
		setAuth(c, auth)
		c.Next()
	}
}

// abort terminates the request with the status mapped from err.
func (p *Plugin) abort(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// removeAuthCookie expires the stored authorization cookie.
func (p *Plugin) removeAuthCookie(c *gin.Context) {
	name := p.cfg.GetTokenFrom.CookieName
	if name == "" {
		name = token.DefaultCookieName
	}
	c.SetCookie(name, "", -1, "/", "", false, true)
}
